package dal

import "VidTube.com/cmd/content/dal/db"

// Init opens the content database and returns the store over it.
func Init() *db.Store {
	db.Init()
	return db.NewStore(db.DB)
}
