package reservation

// 预订域建表语句（sqlite 方言，测试与示例用）。
const (
	BookingSchema = `CREATE TABLE IF NOT EXISTS "Booking" (
	"Id" INTEGER PRIMARY KEY AUTOINCREMENT,
	"ReferenceNr" TEXT NOT NULL,
	"GuestName" TEXT NOT NULL,
	"Email" TEXT NOT NULL DEFAULT '',
	"PhoneNr" TEXT NOT NULL DEFAULT '',
	"StartDate" TIMESTAMP NOT NULL,
	"EndDate" TIMESTAMP NOT NULL,
	"Adults" INTEGER NOT NULL DEFAULT 1,
	"Children" INTEGER NOT NULL DEFAULT 0,
	"RoomId" INTEGER NOT NULL DEFAULT 0,
	"LodgingId" TEXT NOT NULL,
	"UserId" TEXT NOT NULL DEFAULT '',
	"CreatedBy" TEXT NOT NULL DEFAULT '',
	"CreatedOn" TIMESTAMP,
	"LastModifiedBy" TEXT NOT NULL DEFAULT '',
	"LastModifiedOn" TIMESTAMP
)`

	VoucherSchema = `CREATE TABLE IF NOT EXISTS "Voucher" (
	"Id" INTEGER PRIMARY KEY AUTOINCREMENT,
	"Code" TEXT NOT NULL,
	"Title" TEXT NOT NULL,
	"ShortDescription" TEXT NOT NULL DEFAULT '',
	"Rate" REAL NOT NULL DEFAULT 0,
	"Active" INTEGER NOT NULL DEFAULT 1,
	"LodgingId" TEXT NOT NULL,
	"CreatedBy" TEXT NOT NULL DEFAULT '',
	"CreatedOn" TIMESTAMP,
	"LastModifiedBy" TEXT NOT NULL DEFAULT '',
	"LastModifiedOn" TIMESTAMP
)`
)
