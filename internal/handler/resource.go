package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/emr-records/internal/service/crud"
	"github.com/jwalitptl/emr-records/pkg/errors"
	"github.com/jwalitptl/emr-records/pkg/httputil"
)

// Codec translates between the wire and an entity for one resource.
type Codec[T any, K comparable] struct {
	// ParseKey reads the :key path parameter.
	ParseKey func(raw string) (K, error)
	// Decode binds a request body.
	Decode func(c *gin.Context) (*T, error)
	// Encode shapes an entity for a response.
	Encode func(*T) interface{}
	// SetKey overwrites the key of an entity with the path key.
	SetKey func(*T, K)
}

// Resource exposes a crud.Servicer under one path.
type Resource[T any, K comparable] struct {
	path  string
	svc   crud.Servicer[T, K]
	codec Codec[T, K]
}

func NewResource[T any, K comparable](path string, svc crud.Servicer[T, K], codec Codec[T, K]) *Resource[T, K] {
	return &Resource[T, K]{path: path, svc: svc, codec: codec}
}

func (h *Resource[T, K]) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group(h.path)
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:key", h.Get)
		g.PUT("/:key", h.Update)
		g.DELETE("/:key", h.Delete)
	}
}

func (h *Resource[T, K]) Create(c *gin.Context) {
	entity, err := h.codec.Decode(c)
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid request body", err))
		return
	}

	if err := h.svc.Create(c.Request.Context(), entity); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, h.codec.Encode(entity))
}

func (h *Resource[T, K]) Get(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}

	entity, err := h.svc.Get(c.Request.Context(), key)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, h.codec.Encode(entity))
}

func (h *Resource[T, K]) List(c *gin.Context) {
	entities, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	out := make([]interface{}, 0, len(entities))
	for i := range entities {
		out = append(out, h.codec.Encode(&entities[i]))
	}
	httputil.RespondWithSuccess(c, out)
}

// Update overwrites the whole entity. The key in the path wins over any
// key in the body.
func (h *Resource[T, K]) Update(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}

	entity, err := h.codec.Decode(c)
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid request body", err))
		return
	}
	h.codec.SetKey(entity, key)

	if err := h.svc.Update(c.Request.Context(), entity); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, h.codec.Encode(entity))
}

func (h *Resource[T, K]) Delete(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), key); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, nil)
}

func (h *Resource[T, K]) key(c *gin.Context) (K, bool) {
	key, err := h.codec.ParseKey(c.Param("key"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid key", err))
		return key, false
	}
	return key, true
}

// BindJSON decodes the request body into a fresh T.
func BindJSON[T any](c *gin.Context) (*T, error) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// StringKey accepts any non-empty path key.
func StringKey(raw string) (string, error) {
	if raw == "" {
		return "", errors.NewBadRequest("empty key", nil)
	}
	return raw, nil
}
