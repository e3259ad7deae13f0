package admin_login

import (
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

type Authority interface {
	Login(password string) (adminauth.Token, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
