package salonservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// StaticProvider отдаёт настройки салонов из конфигурации, без обращения к SalonService
type StaticProvider struct {
	salons   map[int64]*Salon
	services map[int64]map[int64]*Service
}

// NewStaticProvider собирает провайдер из секций [[salons]]
func NewStaticProvider(salons []config.SalonConfig) (*StaticProvider, error) {
	p := &StaticProvider{
		salons:   make(map[int64]*Salon, len(salons)),
		services: make(map[int64]map[int64]*Service, len(salons)),
	}

	for _, sc := range salons {
		salon := &Salon{
			ID:                  sc.ID,
			Name:                sc.Name,
			SlotDurationMinutes: sc.SlotDurationMinutes,
		}

		days := map[string]*DaySchedule{
			"monday":    &salon.WorkingHours.Monday,
			"tuesday":   &salon.WorkingHours.Tuesday,
			"wednesday": &salon.WorkingHours.Wednesday,
			"thursday":  &salon.WorkingHours.Thursday,
			"friday":    &salon.WorkingHours.Friday,
			"saturday":  &salon.WorkingHours.Saturday,
			"sunday":    &salon.WorkingHours.Sunday,
		}

		for day, hours := range sc.WorkingHours {
			target, ok := days[strings.ToLower(day)]
			if !ok {
				return nil, fmt.Errorf("salon %d: unknown weekday %q", sc.ID, day)
			}
			schedule, err := parseHours(hours)
			if err != nil {
				return nil, fmt.Errorf("salon %d, %s: %w", sc.ID, day, err)
			}
			*target = schedule
		}

		services := make(map[int64]*Service, len(sc.Services))
		for _, svc := range sc.Services {
			price := svc.Price
			services[svc.ID] = &Service{
				ID:              svc.ID,
				SalonID:         sc.ID,
				Name:            svc.Name,
				DurationMinutes: svc.DurationMinutes,
				Price:           &price,
			}
		}

		p.salons[sc.ID] = salon
		p.services[sc.ID] = services
	}

	return p, nil
}

// GetSalon возвращает настройки салона
func (p *StaticProvider) GetSalon(_ context.Context, salonID int64) (*Salon, error) {
	salon, ok := p.salons[salonID]
	if !ok {
		return nil, ErrSalonNotFound
	}
	cp := *salon
	return &cp, nil
}

// GetService возвращает услугу салона
func (p *StaticProvider) GetService(_ context.Context, salonID, serviceID int64) (*Service, error) {
	if _, ok := p.salons[salonID]; !ok {
		return nil, ErrSalonNotFound
	}
	svc, ok := p.services[salonID][serviceID]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

// parseHours разбирает "09:00-18:00"; пустая строка или "closed" означают выходной
func parseHours(hours string) (DaySchedule, error) {
	hours = strings.TrimSpace(hours)
	if hours == "" || strings.EqualFold(hours, "closed") {
		return DaySchedule{IsOpen: false}, nil
	}

	parts := strings.Split(hours, "-")
	if len(parts) != 2 {
		return DaySchedule{}, fmt.Errorf("invalid working hours %q, expected HH:MM-HH:MM", hours)
	}

	open, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return DaySchedule{}, err
	}
	closeTime, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return DaySchedule{}, err
	}
	if !open.IsBefore(closeTime) {
		return DaySchedule{}, fmt.Errorf("invalid working hours %q, open must be before close", hours)
	}

	openStr, closeStr := open.String(), closeTime.String()
	return DaySchedule{IsOpen: true, OpenTime: &openStr, CloseTime: &closeStr}, nil
}
