package analytics

//go:generate mockgen -source=interfaces.go -destination=../../mocks/analytics_mocks.go -package=mocks

type EventTracker interface {
	Track(event string, properties map[string]any)
}
