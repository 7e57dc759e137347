package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"hotelapi/internal/database"
	"hotelapi/internal/http/middleware"
	"hotelapi/internal/model"
	"hotelapi/internal/service"
	serviceMocks "hotelapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(middleware.RequestID())
	return app
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheck(t *testing.T) {
	var pingErr error
	app := newApp()
	app.Get("/health", HealthCheck(database.PingFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return pingErr
	})))

	t.Run("healthy", func(t *testing.T) {
		pingErr = nil
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		pingErr = errors.New("db error")
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
		assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), body.RequestID)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListRoomTypes(t *testing.T) {
	mockSvc := new(serviceMocks.MockRoomTypeService)
	app := newApp()
	app.Get("/room-types", ListRoomTypes(mockSvc))

	t.Run("success with defaults", func(t *testing.T) {
		res := &service.ListResult[model.RoomType]{
			Items: []model.RoomType{{ID: uuid.NewString(), Name: "Deluxe"}},
			Total: 1, Limit: 10,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(res, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/room-types", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.EqualValues(t, 1, body["total"])
		assert.EqualValues(t, 10, body["limit"])
		assert.EqualValues(t, 0, body["offset"])
		assert.Len(t, body["data"], 1)
	})

	for _, q := range []string{"limit=abc", "limit=0", "limit=101", "offset=-1", "offset=x"} {
		t.Run("invalid query "+q, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/room-types?"+q, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_QUERY", decodeError(t, resp).Code)
		})
	}

	t.Run("service error is not leaked", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 5, 5).Return(nil, errors.New("mongo: connection refused")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/room-types?limit=5&offset=5", nil))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body.Code)
		assert.Equal(t, "internal server error", body.Message)
	})

	mockSvc.AssertExpectations(t)
}

func TestCreateRoomType(t *testing.T) {
	mockSvc := new(serviceMocks.MockRoomTypeService)
	app := newApp()
	app.Post("/room-types", CreateRoomType(mockSvc))

	t.Run("created", func(t *testing.T) {
		in := service.RoomTypeInput{Name: "Deluxe", Description: "sea view"}
		mockSvc.On("Create", mock.Anything, in).Return(&model.RoomType{ID: "rt-1", Name: "Deluxe"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/room-types", `{"name":"Deluxe","description":"sea view"}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var rt model.RoomType
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rt))
		assert.Equal(t, "rt-1", rt.ID)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/room-types", `{"name":`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
	})

	t.Run("validation details", func(t *testing.T) {
		verr := &service.ValidationError{Fields: []service.FieldError{{Field: "name", Message: "is required"}}}
		mockSvc.On("Create", mock.Anything, service.RoomTypeInput{}).Return(nil, verr).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/room-types", `{}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Code)
		assert.Equal(t, verr.Fields, body.Details)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, service.RoomTypeInput{Name: "Dup"}).Return(nil, service.ErrConflict).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/room-types", `{"name":"Dup"}`))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestRoomTypeByID(t *testing.T) {
	mockSvc := new(serviceMocks.MockRoomTypeService)
	app := newApp()
	app.Get("/room-types/:id", GetRoomType(mockSvc))
	app.Put("/room-types/:id", ReplaceRoomType(mockSvc))
	app.Patch("/room-types/:id", UpdateRoomType(mockSvc))
	app.Delete("/room-types/:id", DeleteRoomType(mockSvc))
	id := uuid.NewString()

	t.Run("invalid id", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			resp, _ := app.Test(jsonRequest(method, "/room-types/not-a-uuid", `{}`))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, method)
			assert.Equal(t, "INVALID_ID", decodeError(t, resp).Code, method)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrRoomTypeNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/room-types/"+id, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", body.Code)
		assert.Equal(t, "room type not found", body.Message)
	})

	t.Run("replace", func(t *testing.T) {
		mockSvc.On("Replace", mock.Anything, id, service.RoomTypeInput{Name: "Suite"}).
			Return(&model.RoomType{ID: id, Name: "Suite"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/room-types/"+id, `{"name":"Suite"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("patch passes only given fields", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(p service.RoomTypePatch) bool {
			return p.Name == nil && p.Description != nil && *p.Description == "new"
		})).Return(&model.RoomType{ID: id}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPatch, "/room-types/"+id, `{"description":"new"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete in use", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrRoomTypeInUse).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/room-types/"+id, nil))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "ROOM_TYPE_IN_USE", decodeError(t, resp).Code)
	})

	t.Run("delete", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/room-types/"+id, nil))
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestListRooms(t *testing.T) {
	mockSvc := new(serviceMocks.MockRoomService)
	app := newApp()
	app.Get("/rooms", ListRooms(mockSvc))
	typeID := uuid.NewString()

	t.Run("filters are forwarded", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(q service.RoomQuery) bool {
			return q.Limit == 20 && q.Offset == 40 && q.Search == "sea" && q.RoomType == typeID &&
				*q.MinPrice == 50 && *q.MaxPrice == 150.5
		})).Return(&service.ListResult[model.Room]{Items: []model.Room{}, Limit: 20, Offset: 40}, nil).Once()

		url := fmt.Sprintf("/rooms?limit=20&offset=40&search=sea&roomType=%s&minPrice=50&maxPrice=150.5", typeID)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	for _, q := range []string{"minPrice=abc", "maxPrice=-3", "minPrice=10&maxPrice=5", "roomType=deluxe"} {
		t.Run("invalid query "+q, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rooms?"+q, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_QUERY", decodeError(t, resp).Code)
		})
	}

	mockSvc.AssertExpectations(t)
}

func TestRoomHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockRoomService)
	app := newApp()
	app.Post("/rooms", CreateRoom(mockSvc))
	app.Get("/rooms/:id", GetRoom(mockSvc))
	app.Put("/rooms/:id", ReplaceRoom(mockSvc))
	app.Patch("/rooms/:id", UpdateRoom(mockSvc))
	app.Delete("/rooms/:id", DeleteRoom(mockSvc))
	id := uuid.NewString()

	t.Run("create with unknown room type", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.RoomInput) bool {
			return in.Name == "101" && *in.Price == 99
		})).Return(nil, service.ErrInvalidRoomType).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/rooms", `{"name":"101","room_type":"`+uuid.NewString()+`","price":99}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ROOM_TYPE", decodeError(t, resp).Code)
	})

	t.Run("create", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(&model.Room{ID: id, Name: "102"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/rooms", `{"name":"102"}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("wrong json type", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/rooms", `{"price":"cheap"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
	})

	t.Run("get", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, id).Return(&model.Room{ID: id, Name: "102", Price: 80}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rooms/"+id, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var room model.Room
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&room))
		assert.Equal(t, 80.0, room.Price)
	})

	t.Run("replace", func(t *testing.T) {
		mockSvc.On("Replace", mock.Anything, id, mock.Anything).Return(&model.Room{ID: id}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/rooms/"+id, `{"name":"102","price":1}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("patch", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(p service.RoomPatch) bool {
			return p.Capacity != nil && *p.Capacity == 3 && p.Name == nil
		})).Return(&model.Room{ID: id, Capacity: 3}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPatch, "/rooms/"+id, `{"capacity":3}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrRoomNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/rooms/"+id, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestRoomImageHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockRoomService)
	app := newApp()
	app.Post("/rooms/:id/images", UploadRoomImage(mockSvc))
	app.Get("/rooms/:id/images", ListRoomImages(mockSvc))
	app.Delete("/rooms/:id/images/:name", DeleteRoomImage(mockSvc))
	id := uuid.NewString()

	newUpload := func(t *testing.T, field string) *http.Request {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="photo.jpg"`, field))
		h.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		part.Write([]byte("jpeg-bytes"))
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/rooms/"+id+"/images", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req
	}

	t.Run("upload", func(t *testing.T) {
		mockSvc.On("UploadImage", mock.Anything, id, mock.Anything, "photo.jpg", "image/jpeg", int64(10)).
			Run(func(args mock.Arguments) {
				content, _ := io.ReadAll(args.Get(2).(io.Reader))
				assert.Equal(t, "jpeg-bytes", string(content))
			}).
			Return(&model.Room{ID: id, Images: []string{"rooms/" + id + "/x.jpg"}}, nil).Once()

		resp, _ := app.Test(newUpload(t, "file"))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("upload without file", func(t *testing.T) {
		resp, _ := app.Test(newUpload(t, "other"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Code)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		mockSvc.On("ListImages", mock.Anything, id).Return(nil, service.ErrStorageUnavailable).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rooms/"+id+"/images", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "STORAGE_UNAVAILABLE", decodeError(t, resp).Code)
	})

	t.Run("list", func(t *testing.T) {
		links := []service.ImageLink{{Key: "rooms/" + id + "/x.jpg", URL: "https://minio/x"}}
		mockSvc.On("ListImages", mock.Anything, id).Return(links, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rooms/"+id+"/images", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []service.ImageLink `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, links, body.Data)
	})

	t.Run("delete unknown image", func(t *testing.T) {
		mockSvc.On("DeleteImage", mock.Anything, id, "x.jpg").Return(nil, service.ErrImageNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/rooms/"+id+"/images/x.jpg", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core))})
	app.Use(middleware.RequestID())
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrMethodNotAllowed })
	app.Get("/unauthorized", func(c *fiber.Ctx) error { return middleware.ErrMissingAPIKey })
	app.Get("/forbidden", func(c *fiber.Ctx) error { return middleware.ErrInvalidAPIKey })
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("db save failed: %w", service.ErrRoomNotFound)
	})
	app.Get("/internal", func(c *fiber.Ctx) error { return errors.New("secret dsn leaked") })

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/fiber", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"/unauthorized", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"/forbidden", http.StatusForbidden, "FORBIDDEN"},
		{"/wrapped", http.StatusNotFound, "NOT_FOUND"},
		{"/internal", http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"/missing", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.RequestID)
			assert.NotContains(t, body.Message, "secret")
		})
	}

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/internal", entries[0].ContextMap()["path"])
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", statusCode(404))
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", statusCode(413))
	assert.Equal(t, "IM_A_TEAPOT", statusCode(418))
	assert.Equal(t, "ERROR", statusCode(599))
}
