package gateway

import "github.com/David-HERS/HDF5-Data-Migrator/common/api"

var (
	ErrPathNotFound     = api.NewBusinessError(10, "Path not found")
	ErrContainerInvalid = api.NewBusinessError(11, "Invalid container")
	ErrGlobInvalid      = api.NewBusinessError(12, "Invalid glob pattern")
	ErrPathForbidden    = api.NewBusinessError(13, "Path outside repository")
)
