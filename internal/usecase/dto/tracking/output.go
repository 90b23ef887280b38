package trackingdto

import "github.com/radyab-gps/tracking-service/internal/domain"

type IngestSampleOutput struct {
	Record *domain.GpsRecord
	// Derived reports whether speed or heading were filled in from history.
	Derived bool
}
