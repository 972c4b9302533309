package client

import (
	"context"
	"io"
	"net/url"

	"sandgrund/pkg/model"
)

const guidesBasePath = "/api/v1/guides"

type GuidesClient struct {
	httpClient *HttpClient
}

func NewGuidesClient(httpClient *HttpClient) *GuidesClient {
	return &GuidesClient{httpClient: httpClient}
}

// List returns the `guides` field of GET /guides/getGuides. query holds
// optional equality filters on guide fields.
func (c *GuidesClient) List(ctx context.Context, query url.Values) ([]model.Guide, error) {
	path := guidesBasePath + "/getGuides"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}

	var body struct {
		Guides []model.Guide `json:"guides"`
	}
	if err := decode(resp, &body); err != nil {
		return nil, err
	}
	return body.Guides, nil
}

func (c *GuidesClient) Create(ctx context.Context, guide model.Guide) (*model.Guide, error) {
	resp, err := c.httpClient.POST(ctx, guidesBasePath+"/createGuide", guide)
	if err != nil {
		return nil, err
	}
	return decodeData[model.Guide](resp)
}

func (c *GuidesClient) Update(ctx context.Context, id string, update model.GuideUpdate) (*model.Guide, error) {
	resp, err := c.httpClient.PATCH(ctx, guidesBasePath+"/updateGuide/"+url.PathEscape(id), update)
	if err != nil {
		return nil, err
	}
	return decodeData[model.Guide](resp)
}

func (c *GuidesClient) Delete(ctx context.Context, id string) error {
	resp, err := c.httpClient.DELETE(ctx, guidesBasePath+"/deleteGuide/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

func (c *GuidesClient) UploadImage(ctx context.Context, id, filename string, content io.Reader) (*model.Guide, error) {
	resp, err := c.httpClient.Upload(ctx, "/api/v1/users/uploadUserImage/"+url.PathEscape(id), "image", filename, content)
	if err != nil {
		return nil, err
	}
	return decodeData[model.Guide](resp)
}
