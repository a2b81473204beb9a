package main

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scigolib/ncinfo"
	"github.com/scigolib/ncinfo/internal/h5nc"
	"github.com/scigolib/ncinfo/internal/logging"
	"github.com/scigolib/ncinfo/internal/memds"
)

// dataset is an open backend.
type dataset interface {
	ncinfo.Dataset
	Close() error
}

// openDataset picks the backend from the file extension.
func openDataset(path string, logger zerolog.Logger) (dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		logger.Debug().Str("dataset", path).Str("backend", "memds").Msg("opening dataset")
		ds, err := memds.Open(path)
		if err != nil {
			return nil, err
		}
		return ds, nil
	default:
		logger.Debug().Str("dataset", path).Str("backend", "h5nc").Msg("opening dataset")
		ds, err := h5nc.Open(path, h5nc.WithLogger(logging.GetLogger("h5nc")))
		if err != nil {
			return nil, err
		}
		return ds, nil
	}
}
