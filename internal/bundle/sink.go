package bundle

// Step identifies a discrete point in the fetch pipeline.
type Step int

const (
	StepStart Step = iota
	StepDownloaded
	StepExtracting
	StepExtracted
)

// Sink receives progress notifications. It is purely observational: a nil
// sink is valid, and nothing the sink does can alter the fetch outcome.
type Sink func(step Step, detail string)

func (s Sink) notify(step Step, detail string) {
	if s != nil {
		s(step, detail)
	}
}
