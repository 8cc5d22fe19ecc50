package ports

import (
	"fenceline/domain/dataset"
)

// SeriesReader loads numeric series from an external source (file, upload)
type SeriesReader interface {
	ReadMatrix() (*dataset.Matrix, error)
}
