package constants

// gin.Context 中共享对象的键
const (
	DbField       = "db"
	SessionUserID = "user_id"
	LangField     = "lang"
)
