package accommodation

// 住宿域建表语句（sqlite 方言，测试与示例用）。
const (
	LodgingSchema = `CREATE TABLE IF NOT EXISTS "Lodging" (
	"Id" TEXT PRIMARY KEY,
	"Name" TEXT NOT NULL,
	"Description" TEXT NOT NULL DEFAULT '',
	"Teaser" TEXT NOT NULL DEFAULT '',
	"Address" TEXT NOT NULL DEFAULT '',
	"City" TEXT NOT NULL DEFAULT '',
	"PhoneNr" TEXT NOT NULL DEFAULT '',
	"Email" TEXT NOT NULL DEFAULT '',
	"Website" TEXT NOT NULL DEFAULT '',
	"Rate" REAL NOT NULL DEFAULT 0,
	"Discount" REAL NOT NULL DEFAULT 0,
	"CreatedBy" TEXT NOT NULL DEFAULT '',
	"CreatedOn" TIMESTAMP,
	"LastModifiedBy" TEXT NOT NULL DEFAULT '',
	"LastModifiedOn" TIMESTAMP
)`

	RoomSchema = `CREATE TABLE IF NOT EXISTS "Room" (
	"Id" INTEGER PRIMARY KEY AUTOINCREMENT,
	"LodgingId" TEXT NOT NULL,
	"Name" TEXT NOT NULL,
	"Description" TEXT NOT NULL DEFAULT '',
	"BedCount" INTEGER NOT NULL DEFAULT 0,
	"MaxOccupancy" INTEGER NOT NULL DEFAULT 0,
	"MaxAdults" INTEGER NOT NULL DEFAULT 0,
	"Rate" REAL NOT NULL DEFAULT 0,
	"CreatedBy" TEXT NOT NULL DEFAULT '',
	"CreatedOn" TIMESTAMP,
	"LastModifiedBy" TEXT NOT NULL DEFAULT '',
	"LastModifiedOn" TIMESTAMP
)`
)
