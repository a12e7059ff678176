package dto

// UpdatePreferenceRequest creates or replaces the user's study preferences.
type UpdatePreferenceRequest struct {
	BreakLength    int    `json:"breakLength" validate:"min=0,max=180"`
	BreakFrequency int    `json:"breakFrequency" validate:"required,min=15,max=480"`
	LearningStyle  string `json:"learningStyle" validate:"omitempty,oneof=VISUAL AUDITORY KINESTHETIC READING"`
}
