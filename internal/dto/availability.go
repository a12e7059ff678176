package dto

// AvailabilitySlotRequest describes one weekly availability window.
// Minutes are measured from midnight.
type AvailabilitySlotRequest struct {
	DayOfWeek   string `json:"dayOfWeek" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartMinute int    `json:"startMinute" validate:"min=0,max=1439"`
	EndMinute   int    `json:"endMinute" validate:"required,min=1,max=1440"`
}

// ReplaceAvailabilityRequest swaps a user's whole weekly availability.
// An empty slot list clears it.
type ReplaceAvailabilityRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots" validate:"dive"`
}
