package handler

import (
	"github.com/gofiber/fiber/v2"

	"hotelapi/internal/database"
	"hotelapi/internal/service"
)

// RegisterRoutes attaches the probes and the versioned API to the router.
func RegisterRoutes(r fiber.Router, store database.Pinger, roomTypes service.RoomTypeService, rooms service.RoomService) {
	r.Get("/health", HealthCheck(store))
	r.Get("/healthz", LivenessProbe())

	v1 := r.Group("/api/v1")

	rt := v1.Group("/room-types")
	rt.Get("", ListRoomTypes(roomTypes))
	rt.Post("", CreateRoomType(roomTypes))
	rt.Get("/:id", GetRoomType(roomTypes))
	rt.Put("/:id", ReplaceRoomType(roomTypes))
	rt.Patch("/:id", UpdateRoomType(roomTypes))
	rt.Delete("/:id", DeleteRoomType(roomTypes))

	rm := v1.Group("/rooms")
	rm.Get("", ListRooms(rooms))
	rm.Post("", CreateRoom(rooms))
	rm.Get("/:id", GetRoom(rooms))
	rm.Put("/:id", ReplaceRoom(rooms))
	rm.Patch("/:id", UpdateRoom(rooms))
	rm.Delete("/:id", DeleteRoom(rooms))
	rm.Post("/:id/images", UploadRoomImage(rooms))
	rm.Get("/:id/images", ListRoomImages(rooms))
	rm.Delete("/:id/images/:name", DeleteRoomImage(rooms))
}
