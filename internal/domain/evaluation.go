package domain

import "time"

// ContestEvaluation is the engine's derived output for one request. It has
// no identity and no lifecycle beyond the call that produced it.
type ContestEvaluation struct {
	Recommend        bool    `json:"recommend"`
	Confidence       float64 `json:"confidence"`
	EstimatedWinRate float64 `json:"estimatedWinRate"`

	SelectedArgument *ArgumentTemplate `json:"selectedArgument,omitempty"`
	BackupArgument   *ArgumentTemplate `json:"backupArgument,omitempty"`
	ArgumentText     string            `json:"argumentText"`

	WeatherDefense    *WeatherDefense `json:"weatherDefense,omitempty"`
	EvidenceChecklist []ChecklistItem `json:"evidenceChecklist,omitempty"`

	Warnings          []string `json:"warnings,omitempty"`
	DisqualifyReasons []string `json:"disqualifyReasons,omitempty"`

	// UsedGenericKit is set when no kit covered the violation code and the
	// generic fallback template was used.
	UsedGenericKit bool      `json:"usedGenericKit,omitempty"`
	EvaluatedAt    time.Time `json:"evaluatedAt"`
}
