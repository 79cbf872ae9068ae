package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/session --output domain/session --outpkg sessionmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/solution --output domain/solution --outpkg solutionmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CompletionRepository --dir ../domain/solution --output domain/solution --outpkg solutionmock --filename completion_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Editor --dir ../domain/media --output domain/media --outpkg mediamock --filename editor_mock.go
