package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"sandgrund/pkg/model"
)

const toursBasePath = "/api/v1/tours"

type ToursClient struct {
	httpClient *HttpClient
}

func NewToursClient(httpClient *HttpClient) *ToursClient {
	return &ToursClient{httpClient: httpClient}
}

// BookingsByYear returns the `result` field of GET /tours/bookings?year=.
func (c *ToursClient) BookingsByYear(ctx context.Context, year int) ([]model.Booking, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))

	resp, err := c.httpClient.GET(ctx, toursBasePath+"/bookings?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var body struct {
		Result []model.Booking `json:"result"`
	}
	if err := decode(resp, &body); err != nil {
		return nil, err
	}
	return body.Result, nil
}

// Search runs the filter engine server side. criteria keys are booking field names.
func (c *ToursClient) Search(ctx context.Context, year int, criteria url.Values) ([]model.Booking, error) {
	q := url.Values{}
	for k, v := range criteria {
		q[k] = v
	}
	q.Set("year", strconv.Itoa(year))

	resp, err := c.httpClient.GET(ctx, toursBasePath+"/bookings/search?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var body struct {
		Result []model.Booking `json:"result"`
	}
	if err := decode(resp, &body); err != nil {
		return nil, err
	}
	return body.Result, nil
}

func (c *ToursClient) TourDocs(ctx context.Context) ([]model.YearDocument, error) {
	resp, err := c.httpClient.GET(ctx, toursBasePath+"/tourDocs")
	if err != nil {
		return nil, err
	}

	var body struct {
		Data []model.YearDocument `json:"data"`
	}
	if err := decode(resp, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *ToursClient) UpdateBooking(ctx context.Context, id string, update model.BookingUpdate) (*model.Booking, error) {
	resp, err := c.httpClient.PATCH(ctx, toursBasePath+"/bookings/"+url.PathEscape(id), update)
	if err != nil {
		return nil, err
	}
	return decodeData[model.Booking](resp)
}

func (c *ToursClient) Overview(ctx context.Context, year int) ([]byte, error) {
	resp, err := c.httpClient.GET(ctx, toursBasePath+"/overview?year="+strconv.Itoa(year))
	if err != nil {
		return nil, err
	}
	if err := decode(resp, nil); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// decodeData unmarshals the `data` field of a successful envelope.
func decodeData[T any](resp *Response) (*T, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := decode(resp, &wrapper); err != nil {
		return nil, err
	}

	var out T
	if len(wrapper.Data) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(wrapper.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
