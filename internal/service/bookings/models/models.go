package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CreateBookingRequest данные нового бронирования.
// Услуги уже содержат снимок цены и длительности из каталога.
type CreateBookingRequest struct {
	SalonID    int64
	ClientID   *int64  // Зарегистрированный клиент
	ClientName *string // Либо имя клиента без регистрации
	WorkerIDs  []int64 // Пусто - бронирование в общий пул
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Services   []domain.BookedService
	Comment    *string
}

// ModifyBookingRequest правка бронирования персоналом до подтверждения.
// nil - поле не меняется.
type ModifyBookingRequest struct {
	WorkerIDs *[]int64
	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString // По умолчанию сохраняется длительность
	Comment   *string
}

// HasReschedule true, если меняется дата или время
func (r *ModifyBookingRequest) HasReschedule() bool {
	return r.Date != nil || r.StartTime != nil || r.EndTime != nil
}

// ProposeRescheduleRequest предложение персонала перенести бронирование
type ProposeRescheduleRequest struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   *types.TimeString // По умолчанию сохраняется длительность
	Comment   *string
}

// ListBookingsRequest запрос на получение бронирований салона
type ListBookingsRequest struct {
	SalonID         int64
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить отменённые и закрытые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		SalonID:         r.SalonID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookedServiceResponse услуга в составе бронирования
type BookedServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// HistoryEntryResponse запись журнала изменений
type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	Action    string    `json:"action"`
	ActorID   int64     `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	Comment   *string   `json:"comment,omitempty"`
}

// ProposedRescheduleResponse ожидающее подтверждения предложение переноса
type ProposedRescheduleResponse struct {
	Date       string    `json:"date"`      // "2025-10-15"
	StartTime  string    `json:"startTime"` // "10:00"
	EndTime    string    `json:"endTime"`
	ProposedBy int64     `json:"proposedBy"`
	ProposedAt time.Time `json:"proposedAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	SalonID       int64   `json:"salonId"`
	ClientID      *int64  `json:"clientId,omitempty"`
	ClientName    *string `json:"clientName,omitempty"`
	WorkerIDs     []int64 `json:"workerIds"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	AdminModified bool    `json:"adminModified"`
	IncomeID      *int64  `json:"incomeId,omitempty"`
	Comment       *string `json:"comment,omitempty"`

	Services   []BookedServiceResponse     `json:"services"`
	TotalPrice float64                     `json:"totalPrice"`
	Proposed   *ProposedRescheduleResponse `json:"proposedReschedule,omitempty"`
	History    []HistoryEntryResponse      `json:"history"`

	// Действия, доступные текущему пользователю
	AllowedActions []string `json:"allowedActions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO с учётом прав пользователя
func FromDomainBooking(b *domain.Booking, actor domain.Actor) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		SalonID:        b.SalonID,
		ClientID:       b.ClientID,
		ClientName:     b.ClientName,
		WorkerIDs:      append([]int64{}, b.WorkerIDs...),
		Date:           b.Date.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		Status:         string(b.Status),
		AdminModified:  b.AdminModified,
		IncomeID:       b.IncomeID,
		Comment:        b.Comment,
		Services:       make([]BookedServiceResponse, len(b.Services)),
		TotalPrice:     b.TotalPrice(),
		History:        make([]HistoryEntryResponse, len(b.History)),
		AllowedActions: ToActionNames(b.AllowedEvents(actor)),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	for i, s := range b.Services {
		resp.Services[i] = BookedServiceResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	for i, h := range b.History {
		resp.History[i] = HistoryEntryResponse{
			ID:        h.ID.String(),
			At:        h.At,
			Action:    h.Action,
			ActorID:   h.ActorID,
			ActorRole: string(h.ActorRole),
			Comment:   h.Comment,
		}
	}

	if b.Proposed != nil {
		resp.Proposed = &ProposedRescheduleResponse{
			Date:       b.Proposed.Date.Format(domain.DateFormat),
			StartTime:  b.Proposed.StartTime.String(),
			EndTime:    b.Proposed.EndTime.String(),
			ProposedBy: b.Proposed.ProposedBy,
			ProposedAt: b.Proposed.ProposedAt,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, actor domain.Actor) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, actor); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToActionNames конвертирует события в строковые имена действий
func ToActionNames(events []domain.Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e)
	}
	return names
}
