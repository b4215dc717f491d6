package service

import (
	"io"
	"time"

	"serveportal_backend/internal/jobs/domain"

	"github.com/rwcarlsen/goexif/exif"
)

// photoMetadata is what an attempt photo's EXIF block tells us.
type photoMetadata struct {
	TakenAt *time.Time
	GPS     *domain.GPS
}

// readPhotoMetadata extracts capture time and location. Photos without EXIF
// return empty metadata and no error.
func readPhotoMetadata(r io.Reader) (photoMetadata, error) {
	x, err := exif.Decode(r)
	if err != nil {
		if exif.IsCriticalError(err) {
			return photoMetadata{}, nil
		}
		if x == nil {
			return photoMetadata{}, err
		}
	}

	var meta photoMetadata
	if taken, err := x.DateTime(); err == nil {
		taken = taken.UTC()
		meta.TakenAt = &taken
	}
	if lat, lon, err := x.LatLong(); err == nil {
		meta.GPS = &domain.GPS{Latitude: lat, Longitude: lon}
	}
	return meta, nil
}
