package ports

import "time"

type RequestObserver interface {
	ObserveRequest(method string, resource string, outcome string, elapsed time.Duration)
}
