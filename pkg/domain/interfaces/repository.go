package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Activity() ActivityRepository
	Assessment() AssessmentRepository

	Close() error
}
