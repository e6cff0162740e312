package client

import (
	"context"
	"facilitybooking/internal/entities"
	"net/http"
	"net/url"
)

func (c *BookingAPI) ListFacilities(ctx context.Context) ([]entities.Facility, error) {
	var out []entities.Facility
	if err := c.do(ctx, http.MethodGet, "/api/facilities", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingAPI) GetFacility(ctx context.Context, id string) (*entities.Facility, error) {
	var out entities.Facility
	if err := c.do(ctx, http.MethodGet, "/api/facilities/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingAPI) CreateFacility(ctx context.Context, req entities.FacilityRequest) (*entities.Facility, error) {
	var out entities.Facility
	if err := c.do(ctx, http.MethodPost, "/api/facilities", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingAPI) UpdateFacility(ctx context.Context, id string, req entities.FacilityRequest) (*entities.Facility, error) {
	var out entities.Facility
	if err := c.do(ctx, http.MethodPatch, "/api/facilities/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingAPI) DeleteFacility(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/facilities/"+url.PathEscape(id), nil, nil, nil)
}
