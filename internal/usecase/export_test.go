package usecase

import "time"

// SetNow overrides the clock used for time-window checks, for tests.
func (uc *BookingUseCase) SetNow(now func() time.Time) {
	uc.now = now
}
