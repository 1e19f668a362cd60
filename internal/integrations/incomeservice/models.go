package incomeservice

// DraftRequest данные бронирования для черновика дохода.
// Цены берутся из бронирования, а не из текущего каталога.
type DraftRequest struct {
	BookingID  int64          `json:"bookingId"`
	SalonID    int64          `json:"salonId"`
	ClientID   *int64         `json:"clientId,omitempty"`
	WorkerIDs  []int64        `json:"workerIds"`
	Services   []DraftService `json:"services"`
	TotalPrice float64        `json:"totalPrice"`
}

// DraftService услуга с ценой на момент бронирования
type DraftService struct {
	ServiceID int64   `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// Draft созданный черновик дохода
type Draft struct {
	ID int64 `json:"id"`
}
