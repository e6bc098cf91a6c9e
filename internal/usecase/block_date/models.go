package block_date

import "time"

// Request модель запроса на блокировку диапазона дат.
// EndDate может совпадать со StartDate (блокировка одного дня)
type Request struct {
	BusinessID int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string // необязательная причина ("отпуск", "праздник")
}

// BlockedDate одна заблокированная дата
type BlockedDate struct {
	ID     int64
	Date   time.Time
	Reason *string
}

// Response модель ответа со всеми датами диапазона
type Response struct {
	BlockedDates []BlockedDate
}
