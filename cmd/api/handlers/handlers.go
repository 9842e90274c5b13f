package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/content/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var (
	deps      *service.Deps
	uploadDir = "./public/temp"
)

// Init hands the content collaborators to every handler.
func Init(d *service.Deps, stagingDir string) {
	deps = d
	if stagingDir != "" {
		uploadDir = stagingDir
	}
}

type Response struct {
	StatusCode int64       `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

type ErrorResponse struct {
	StatusCode int64    `json:"statusCode"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

// SendResponse pack response. Error codes double as HTTP status codes.
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	if Err.ErrCode == errno.ServiceErrCode {
		hlog.Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	if Err.ErrCode == errno.SuccessCode {
		c.JSON(http.StatusOK, Response{
			StatusCode: Err.ErrCode,
			Success:    true,
			Message:    Err.ErrMsg,
			Data:       data,
		})
		return
	}
	c.JSON(int(Err.ErrCode), ErrorResponse{
		StatusCode: Err.ErrCode,
		Success:    false,
		Message:    Err.ErrMsg,
		Errors:     []string{Err.ErrMsg},
	})
}

func ok200(msg string) errno.ErrNo {
	return errno.Success.WithMessage(msg)
}

type ListParam struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	UserId   string `query:"userId"`
}

func (p *ListParam) listQuery() pipeline.ListQuery {
	return pipeline.ListQuery{Page: p.Page, Limit: p.Limit, SortBy: p.SortBy, SortType: p.SortType}
}

type ContentParam struct {
	Content string `json:"content" form:"content"`
}

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

// viewer resolves the authenticated viewer or answers 401.
func viewer(ctx context.Context, c *app.RequestContext) (string, bool) {
	id, err := jwt.ConvertJWTPayloadToString(ctx, c)
	if err != nil {
		SendResponse(c, errno.AuthorizationFailedErr, nil)
		return "", false
	}
	return id, true
}

// bind decodes query, path and body into req, answering 400 on failure.
func bind(c *app.RequestContext, req interface{}) bool {
	if err := c.BindAndValidate(req); err != nil {
		hlog.Info(err)
		SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return false
	}
	return true
}

// stageUpload saves the multipart file field into the upload directory and
// returns its path. A missing optional field yields "".
func stageUpload(c *app.RequestContext, field string, optional bool) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if optional {
			return "", nil
		}
		return "", errno.ParamErr.WithMessage(field + " is required")
	}
	return saveUpload(c, fh)
}

func saveUpload(c *app.RequestContext, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(uploadDir, utils.NewID()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// discardStaged removes staged uploads the media store did not consume.
func discardStaged(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			hlog.Warnf("remove staged upload %s: %v", p, err)
		}
	}
}
