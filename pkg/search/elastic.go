package search

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

const videoMapping = `{
	"mappings": {
		"properties": {
			"id":          {"type": "keyword"},
			"owner_id":    {"type": "keyword"},
			"title":       {"type": "text"},
			"description": {"type": "text"}
		}
	}
}`

type ElasticIndex struct {
	client *elastic.Client
	index  string
}

var _ Index = (*ElasticIndex)(nil)

func NewElasticClient(urls ...string) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(urls...),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create elastic client")
	}
	return client, nil
}

func NewElasticIndex(client *elastic.Client, index string) *ElasticIndex {
	return &ElasticIndex{client: client, index: index}
}

// EnsureIndex creates the index with its mapping when missing.
func (e *ElasticIndex) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.IndexExists(e.index).Do(ctx)
	if err != nil {
		return errors.Wrap(err, "check index")
	}
	if exists {
		return nil
	}
	if _, err = e.client.CreateIndex(e.index).BodyString(videoMapping).Do(ctx); err != nil {
		return errors.Wrap(err, "create index")
	}
	hlog.CtxInfof(ctx, "created search index %s", e.index)
	return nil
}

func (e *ElasticIndex) Put(ctx context.Context, doc Document) error {
	_, err := e.client.Index().Index(e.index).Id(doc.ID).BodyJson(doc).Do(ctx)
	return errors.Wrap(err, "index video")
}

func (e *ElasticIndex) Remove(ctx context.Context, id string) error {
	_, err := e.client.Delete().Index(e.index).Id(id).Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return errors.Wrap(err, "remove video from index")
	}
	return nil
}

func (e *ElasticIndex) Search(ctx context.Context, text string, limit int) ([]string, error) {
	res, err := e.client.Search().
		Index(e.index).
		Query(elastic.NewMultiMatchQuery(text, "title", "description")).
		FetchSource(false).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "search videos")
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.Id)
	}
	return ids, nil
}
