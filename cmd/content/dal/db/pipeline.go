package db

import (
	"context"
	"fmt"
	"strings"

	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"gorm.io/gorm"
)

const baseAlias = "t"

// compiled is the pieces of one listing statement.
type compiled struct {
	selects []string
	outputs map[string]bool
	order   []string
	window  *pipeline.Window
}

// RunPipeline executes stages over kind and scans the windowed rows into
// dst, a pointer to a slice of row structs. It returns the number of rows
// the pipeline yields before windowing.
func (s *Store) RunPipeline(ctx context.Context, kind model.Kind, stages []pipeline.Stage, dst interface{}) (int64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	if err := pipeline.Validate(stages); err != nil {
		return 0, err
	}
	q := s.db.WithContext(ctx).Table(kind.Table() + " AS " + baseAlias)
	c := &compiled{outputs: map[string]bool{}}

	for i, st := range stages {
		var err error
		switch v := st.(type) {
		case pipeline.Filter:
			q, err = applyFilter(q, v)
		case pipeline.Join:
			q, err = c.applyJoin(q, v, i)
		case pipeline.Derive:
			q, err = c.applyDerive(q, v, i)
		case pipeline.Sort:
			c.applySort(kind, v)
		case pipeline.Project:
			c.applyProject(v)
		case pipeline.Window:
			w := v
			c.window = &w
		default:
			err = errno.ServiceErr.WithMessage(fmt.Sprintf("unsupported pipeline stage %T", st))
		}
		if err != nil {
			return 0, err
		}
	}
	if len(c.order) == 0 {
		c.applySort(kind, pipeline.Sort{Field: "created_at", Desc: true})
	}

	base := q.Session(&gorm.Session{})
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, s.convert(ctx, err, kind, "count pipeline")
	}

	rows := base.Select(c.selects).Order(strings.Join(c.order, ", "))
	if c.window != nil {
		rows = rows.Limit(c.window.Limit).Offset(c.window.Offset())
	}
	if err := rows.Scan(dst).Error; err != nil {
		return 0, s.convert(ctx, err, kind, "run pipeline")
	}
	return total, nil
}

// column qualifies a bare base-table column.
func column(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return baseAlias + "." + name
}

// likeEscaper makes user text match literally inside a LIKE pattern. The
// escape character is '!' because backslash is itself special in mysql literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func applyFilter(q *gorm.DB, f pipeline.Filter) (*gorm.DB, error) {
	switch f.Op {
	case pipeline.FilterEq:
		return q.Where(column(f.Field)+" = ?", f.Value), nil
	case pipeline.FilterIn:
		return q.Where(column(f.Field)+" IN ?", f.Value), nil
	case pipeline.FilterText:
		text, _ := f.Value.(string)
		if strings.TrimSpace(text) == "" || len(f.Fields) == 0 {
			return q, nil
		}
		like := "%" + likeEscaper.Replace(strings.TrimSpace(text)) + "%"
		parts := make([]string, len(f.Fields))
		args := make([]interface{}, len(f.Fields))
		for i, fld := range f.Fields {
			parts[i] = column(fld) + " LIKE ? ESCAPE '!'"
			args[i] = like
		}
		return q.Where("("+strings.Join(parts, " OR ")+")", args...), nil
	case pipeline.FilterVisible:
		return q.Where("("+column(f.Field)+" = ? OR "+column(f.OwnerField)+" = ?)", true, f.Value), nil
	}
	return nil, errno.ServiceErr.WithMessage(fmt.Sprintf("unsupported filter op %d", f.Op))
}

func (c *compiled) output(expr, as string) {
	c.selects = append(c.selects, expr+" AS "+as)
	c.outputs[as] = true
}

func (c *compiled) applyJoin(q *gorm.DB, j pipeline.Join, i int) (*gorm.DB, error) {
	alias := j.As
	if alias == "" {
		alias = fmt.Sprintf("j%d", i)
	}
	local := column(j.LocalField)
	switch j.Op {
	case pipeline.JoinOwner:
		u := fmt.Sprintf("u%d", i)
		q = q.Joins(fmt.Sprintf("INNER JOIN %s %s ON %s.user_id = %s", model.KindUser.Table(), u, u, local))
		c.output(u+".user_name", alias+"_user_name")
		c.output(u+".full_name", alias+"_full_name")
		c.output(u+".avatar_url", alias+"_avatar_url")
		return q, nil
	case pipeline.JoinPlaylistEntry:
		q = q.Joins(fmt.Sprintf("INNER JOIN playlist_videos %s ON %s.video_id = %s AND %s.playlist_id = ?",
			alias, alias, local, alias), j.PlaylistID)
		c.output(alias+".position", "position")
		return q, nil
	case pipeline.JoinLikedBy:
		q = q.Joins(fmt.Sprintf("INNER JOIN likes %s ON %s.target_id = %s AND %s.target_kind = ? AND %s.liked_by = ?",
			alias, alias, local, alias, alias), string(j.Target), j.Viewer)
		return q, nil
	}
	return nil, errno.ServiceErr.WithMessage(fmt.Sprintf("unsupported join op %d", j.Op))
}

func (c *compiled) applySort(kind model.Kind, s pipeline.Sort) {
	dir := func(desc bool) string {
		if desc {
			return "DESC"
		}
		return "ASC"
	}
	field := s.Field
	if !c.outputs[field] {
		field = column(field)
	}
	c.order = append(c.order, field+" "+dir(s.Desc))
	if s.Field != "created_at" {
		c.order = append(c.order, column("created_at")+" DESC")
	}
	c.order = append(c.order, column(kind.PrimaryKey())+" DESC")
}

func (c *compiled) applyProject(p pipeline.Project) {
	cols := make([]string, 0, len(p.Columns)+len(c.selects))
	for _, col := range p.Columns {
		cols = append(cols, column(col)+" AS "+col)
	}
	c.selects = append(cols, c.selects...)
}
