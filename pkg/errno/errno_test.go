package errno

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.Equal(t, Success, ConvertErr(nil))
	})
	t.Run("wrapped errno keeps its code", func(t *testing.T) {
		err := errors.Wrap(NotFoundErr, "load video")
		assert.Equal(t, int64(NotFoundErrCode), ConvertErr(err).ErrCode)
		assert.True(t, Is(err, NotFoundErr))
	})
	t.Run("plain error becomes service error", func(t *testing.T) {
		got := ConvertErr(errors.New("open /var/media/x.mp4: permission denied"))
		assert.Equal(t, ServiceErr, got)
		assert.NotContains(t, got.ErrMsg, "/var/media")
	})
	t.Run("custom message keeps the class", func(t *testing.T) {
		err := ParamErr.WithMessage("title is required")
		assert.True(t, IsValidation(err))
		assert.True(t, Is(err, ParamErr))
		assert.False(t, Is(err, ForbiddenErr))
	})
}
