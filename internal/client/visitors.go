package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"visitor-cli/pkg/models"
)

const entriesPath = "/api/entries/"

// SubmitVisitor creates a check-in. An empty CheckinTime is stamped with the current time.
func (c *VisitorClient) SubmitVisitor(ctx context.Context, p models.VisitorPayload) (models.Visitor, error) {
	if p.CheckinTime == "" {
		p.CheckinTime = time.Now().Format(time.RFC3339)
	}

	resp, err := c.request(ctx).
		SetBody(p).
		Post(entriesPath)
	if err := check(resp, err); err != nil {
		return models.Visitor{}, err
	}

	// Some backends answer 201 with an empty body.
	created := models.WireVisitor{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Purpose:     p.Purpose,
		Host:        p.Host,
		Message:     p.Message,
		CheckinTime: p.CheckinTime,
	}
	if body := bytes.TrimSpace(resp.Body()); len(body) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			return models.Visitor{}, decodeError(err)
		}
	}
	return created.Normalize(), nil
}

// ListVisitors fetches one page of visitors matching q.
// pages is the backend's page count, derived from its record count when only
// that is reported, or 1 for a plain array response.
func (c *VisitorClient) ListVisitors(ctx context.Context, q models.ListQuery) (visitors []models.Visitor, pages int, err error) {
	req := c.request(ctx)
	setQuery := func(key, value string) {
		if value != "" {
			req.SetQueryParam(key, value)
		}
	}
	setQuery("search", q.Search)
	setQuery("purpose", q.Purpose)
	setQuery("startDate", q.StartDate)
	setQuery("endDate", q.EndDate)
	if q.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(q.Limit))
	}

	resp, err := req.Get(entriesPath)
	if err := check(resp, err); err != nil {
		return nil, 0, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '[' {
		var list []models.WireVisitor
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, 0, decodeError(err)
		}
		return models.NormalizeAll(list), 1, nil
	}

	var envelope models.VisitorListResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, decodeError(err)
	}
	return models.NormalizeAll(envelope.Records()), envelope.PageCount(q.Limit), nil
}

// ListAllVisitors follows the backend's pagination and returns every record.
func (c *VisitorClient) ListAllVisitors(ctx context.Context, q models.ListQuery) ([]models.Visitor, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	var all []models.Visitor
	for page := 1; ; page++ {
		q.Page = page
		batch, pages, err := c.ListVisitors(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if page >= pages || len(batch) == 0 {
			return all, nil
		}
	}
}

// GetVisitor fetches a single record.
func (c *VisitorClient) GetVisitor(ctx context.Context, id string) (models.Visitor, error) {
	var result models.WireVisitor

	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetResult(&result).
		Get(entriesPath + "{id}/")
	if err := check(resp, err); err != nil {
		return models.Visitor{}, err
	}
	return result.Normalize(), nil
}

// DeleteVisitor removes a whole record.
func (c *VisitorClient) DeleteVisitor(ctx context.Context, id string) error {
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		Delete(entriesPath + "{id}/")
	return check(resp, err)
}
