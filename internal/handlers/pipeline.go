package handlers

// step is one stage of a request pipeline.
type step func() error

// runSteps runs steps in order and returns the first failure. Later steps
// never run once one has failed, so nothing is persisted after a rejection.
func runSteps(steps ...step) error {
	for _, s := range steps {
		if err := s(); err != nil {
			return err
		}
	}
	return nil
}
