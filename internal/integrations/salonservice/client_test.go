package salonservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

func TestClient_GetSalon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/salons/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1,"name":"Central","slotDurationMinutes":30,
				"workingHours":{"monday":{"isOpen":true,"openTime":"09:00","closeTime":"18:00"},"sunday":{"isOpen":false}}}`))
		case "/internal/salons/2":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())

	salon, err := c.GetSalon(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Central", salon.Name)
	assert.True(t, salon.WorkingHours.Monday.IsOpen)
	require.NotNil(t, salon.WorkingHours.Monday.OpenTime)
	assert.Equal(t, "09:00", *salon.WorkingHours.Monday.OpenTime)
	assert.False(t, salon.WorkingHours.Sunday.IsOpen)

	_, err = c.GetSalon(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = c.GetSalon(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/internal/salons/1/services/5" {
			_, _ = w.Write([]byte(`{"id":5,"salonId":1,"name":"Coloring","durationMinutes":90,"price":4500}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())

	svc, err := c.GetService(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 90, svc.DurationMinutes)
	require.NotNil(t, svc.Price)
	assert.Equal(t, 4500.0, *svc.Price)

	_, err = c.GetService(context.Background(), 1, 6)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.Nop())

	_, err := c.GetSalon(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestStaticProvider(t *testing.T) {
	p, err := NewStaticProvider([]config.SalonConfig{{
		ID:                  1,
		Name:                "Central",
		SlotDurationMinutes: 30,
		WorkingHours: map[string]string{
			"Monday": "09:00-18:00",
			"sunday": "closed",
		},
		Services: []config.ServiceConfig{{ID: 2, Name: "Haircut", DurationMinutes: 30, Price: 1500}},
	}})
	require.NoError(t, err)

	salon, err := p.GetSalon(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, salon.WorkingHours.Monday.IsOpen)
	assert.Equal(t, "18:00", *salon.WorkingHours.Monday.CloseTime)
	assert.False(t, salon.WorkingHours.Sunday.IsOpen)
	assert.False(t, salon.WorkingHours.Tuesday.IsOpen, "unlisted weekdays are closed")

	svc, err := p.GetService(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, *svc.Price)

	_, err = p.GetSalon(context.Background(), 9)
	assert.ErrorIs(t, err, ErrSalonNotFound)
	_, err = p.GetService(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestStaticProvider_InvalidHours(t *testing.T) {
	for _, hours := range []string{"9-18", "18:00-09:00", "09:00"} {
		_, err := NewStaticProvider([]config.SalonConfig{{
			ID:           1,
			WorkingHours: map[string]string{"monday": hours},
		}})
		assert.Error(t, err, hours)
	}

	_, err := NewStaticProvider([]config.SalonConfig{{
		ID:           1,
		WorkingHours: map[string]string{"funday": "09:00-18:00"},
	}})
	assert.Error(t, err)
}
