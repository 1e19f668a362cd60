package salonservice

// Salon модель салона из SalonService
type Salon struct {
	ID                  int64        `json:"id"`
	Name                string       `json:"name"`
	SlotDurationMinutes int          `json:"slotDurationMinutes"`
	WorkingHours        WorkingHours `json:"workingHours"`
}

// WorkingHours расписание работы по дням недели
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание на день
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}

// Service услуга из каталога салона
type Service struct {
	ID              int64    `json:"id"`
	SalonID         int64    `json:"salonId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
}
