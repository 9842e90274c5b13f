package errno

import (
	"fmt"

	"github.com/pkg/errors"
)

// Codes follow the http status the gateway answers with.
const (
	SuccessCode          = 200
	ParamErrCode         = 400
	AuthorizationErrCode = 401
	ForbiddenErrCode     = 403
	NotFoundErrCode      = 404
	ConflictErrCode      = 409
	ServiceErrCode       = 500
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

// WithMessage keeps the code and replaces the message.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	InvalidIdentifierErr   = NewErrNo(ParamErrCode, "Invalid identifier")
	AuthorizationFailedErr = NewErrNo(AuthorizationErrCode, "Authorization failed")
	ForbiddenErr           = NewErrNo(ForbiddenErrCode, "You are not allowed to perform this action")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Resource not found")
	ConflictErr            = NewErrNo(ConflictErrCode, "Resource already exists")
	ServiceErr             = NewErrNo(ServiceErrCode, "Internal server error")
)

// ConvertErr convert error to Errno. Errors outside the taxonomy become a
// bare ServiceErr so their text never reaches a client.
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr
}

// IsValidation reports whether err belongs to the 400 class.
func IsValidation(err error) bool {
	return ConvertErr(err).ErrCode == ParamErrCode
}

// Is compares codes only, so a ParamErr with a custom message still matches ParamErr.
func Is(err error, target ErrNo) bool {
	if err == nil {
		return false
	}
	Err := ErrNo{}
	if !errors.As(err, &Err) {
		return false
	}
	return Err.ErrCode == target.ErrCode
}
