package mocks

//go:generate mockery --name ResultWriter --srcpkg github.com/aevon-lab/costroll/internal/aggregation --output ./aggregation --outpkg aggregationmocks --with-expecter
//go:generate mockery --name ResultReader --srcpkg github.com/aevon-lab/costroll/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
