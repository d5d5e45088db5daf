package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScoreFeed --dir ../usecase --output usecase --outpkg usecasemock --filename score_feed_mock.go
