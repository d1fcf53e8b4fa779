package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type RunReportMailData struct {
	FullName             string    `json:"fullName"`
	RunID                string    `json:"runID"`
	Seed                 int64     `json:"seed"`
	PopulationSize       int       `json:"populationSize"`
	Generations          int       `json:"generations"`
	BestFitness          []int     `json:"bestFitness"`
	FinalMeanFitness     float64   `json:"finalMeanFitness"`
	IncorrectRestPeriods int       `json:"incorrectRestPeriods"`
	MismatchedSkills     int       `json:"mismatchedSkills"`
	TotalAppointments    int       `json:"totalAppointments"`
	DroppedAppointments  int       `json:"droppedAppointments"`
	MaxFitnessCurve      []float64 `json:"maxFitnessCurve"`
}
