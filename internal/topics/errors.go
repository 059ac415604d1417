package topics

import "errors"

var (
	// ErrNoValidInput means every submitted document was empty after validation.
	ErrNoValidInput = errors.New("[TopicExtractor] no valid documents available for topic extraction")

	// ErrInferenceFailure is matched by every InferenceError.
	ErrInferenceFailure = errors.New("[TopicExtractor] topic inference failed")

	errEmptyVocabulary = errors.New("corpus has no terms outside the stop list")
)

// InferenceError wraps whatever went wrong inside the topic model.
type InferenceError struct {
	Cause error
}

func (e *InferenceError) Error() string {
	return ErrInferenceFailure.Error() + ": " + e.Cause.Error()
}

func (e *InferenceError) Unwrap() []error {
	return []error{ErrInferenceFailure, e.Cause}
}
