package app

import (
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/perfectlabs/deployergo/modules/dask"
	"github.com/perfectlabs/deployergo/modules/kubernetes"
	"github.com/perfectlabs/deployergo/modules/metadata"
	"github.com/perfectlabs/deployergo/modules/s3"
)

// coreModules is the definitive list of all annotation modules that are
// compiled into the deployergo binary.
var coreModules = []registry.Module{
	&kubernetes.Module{},
	&dask.Module{},
	&s3.Module{},
	&metadata.Module{},
}
