package pipeline

type ErrNoFrameAvailable struct{}

func (ErrNoFrameAvailable) Error() string {
	return "no frame was processed yet"
}
