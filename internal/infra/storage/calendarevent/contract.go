package calendarevent

import "github.com/m04kA/SMC-BookingSlots/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
