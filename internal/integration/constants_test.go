package integration_test

const (
	TestUserId    = 1
	TestUserEmail = "test@example.com"
	OtherUserId   = 2

	// IDs fixed by testdata/catalog_up.sql
	TestMovieId      = 1
	TestMovieTitle   = "The Go Story"
	TestSessionId    = 1
	SmallHallSession = 2
)
