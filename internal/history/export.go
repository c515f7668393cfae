package history

// RunView is the JSON shape emitted by `pypub history --json`.
type RunView struct {
	ID             int64      `json:"id"`
	Project        string     `json:"project"`
	Version        string     `json:"version,omitempty"`
	PublisherName  string     `json:"publisher_name,omitempty"`
	PublisherEmail string     `json:"publisher_email,omitempty"`
	StartedAt      string     `json:"started_at"`
	FinishedAt     string     `json:"finished_at,omitempty"`
	Status         string     `json:"status"`
	FailedStep     string     `json:"failed_step,omitempty"`
	ExitCode       *int64     `json:"exit_code,omitempty"`
	Artifact       string     `json:"artifact,omitempty"`
	Steps          []StepView `json:"steps,omitempty"`
}

// StepView is the JSON shape of one recorded step.
type StepView struct {
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Detail     string `json:"detail,omitempty"`
}

// NewRunView flattens a Run's nullable columns for export.
func NewRunView(run *Run) RunView {
	v := RunView{
		ID:        run.ID,
		Project:   run.Project,
		StartedAt: run.StartedAt,
		Status:    run.Status,
	}
	if run.Version.Valid {
		v.Version = run.Version.String
	}
	if run.PublisherName.Valid {
		v.PublisherName = run.PublisherName.String
	}
	if run.PublisherEmail.Valid {
		v.PublisherEmail = run.PublisherEmail.String
	}
	if run.FinishedAt.Valid {
		v.FinishedAt = run.FinishedAt.String
	}
	if run.FailedStep.Valid {
		v.FailedStep = run.FailedStep.String
	}
	if run.ExitCode.Valid {
		code := run.ExitCode.Int64
		v.ExitCode = &code
	}
	if run.Artifact.Valid {
		v.Artifact = run.Artifact.String
	}
	for _, st := range run.Steps {
		sv := StepView{Position: st.Position, Name: st.Name, Status: st.Status}
		if st.DurationMS.Valid {
			sv.DurationMS = st.DurationMS.Int64
		}
		if st.Detail.Valid {
			sv.Detail = st.Detail.String
		}
		v.Steps = append(v.Steps, sv)
	}
	return v
}
