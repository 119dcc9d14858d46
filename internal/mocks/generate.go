package mocks

//go:generate mockery --name StatStore --srcpkg github.com/aevon-lab/project-locus/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
