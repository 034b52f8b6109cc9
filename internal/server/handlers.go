package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/GlassCut/internal/engine"
	"github.com/piwi3910/GlassCut/internal/export"
	"github.com/piwi3910/GlassCut/internal/model"
	"k8s.io/klog/v2"
)

var errNotFound = errors.New("not found")

// optimizeRequest carries optional overrides; omitted parts come from the workspace.
type optimizeRequest struct {
	Inventory []model.Scrap `json:"inventory"`
	Orders    []model.Order `json:"orders"`
}

type quickCheckRequest struct {
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Orders []model.Order `json:"orders"`
}

func (s *Server) handleListInventory(c *gin.Context) {
	ws, err := s.store.Load()
	if err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ws.Inventory)
}

func (s *Server) handleAddScrap(c *gin.Context) {
	var scrap model.Scrap
	if err := c.ShouldBindJSON(&scrap); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}
	if !scrap.Valid() {
		abortError(c, http.StatusBadRequest, fmt.Errorf("scrap needs positive width, height and quantity"))
		return
	}

	var added model.Scrap
	_, err := s.store.Update(func(ws *model.Workspace) error {
		added = ws.AddScrap(scrap)
		return nil
	})
	if err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}
	klog.InfoS("Scrap added", "id", added.ID, "width", added.Width, "height", added.Height, "quantity", added.Quantity)
	c.JSON(http.StatusCreated, added)
}

func (s *Server) handleDeleteScrap(c *gin.Context) {
	id := c.Param("id")
	_, err := s.store.Update(func(ws *model.Workspace) error {
		if !ws.RemoveScrap(id) {
			return errNotFound
		}
		return nil
	})
	s.respondDelete(c, "scrap", id, err)
}

func (s *Server) handleListOrders(c *gin.Context) {
	ws, err := s.store.Load()
	if err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ws.Orders)
}

func (s *Server) handleAddOrder(c *gin.Context) {
	var order model.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}
	if !order.Valid() {
		abortError(c, http.StatusBadRequest, fmt.Errorf("order needs positive width, height and quantity"))
		return
	}

	var added model.Order
	_, err := s.store.Update(func(ws *model.Workspace) error {
		added = ws.AddOrder(order)
		return nil
	})
	if err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}
	klog.InfoS("Order added", "id", added.ID, "width", added.Width, "height", added.Height, "quantity", added.Quantity)
	c.JSON(http.StatusCreated, added)
}

func (s *Server) handleDeleteOrder(c *gin.Context) {
	id := c.Param("id")
	_, err := s.store.Update(func(ws *model.Workspace) error {
		if !ws.RemoveOrder(id) {
			return errNotFound
		}
		return nil
	})
	s.respondDelete(c, "order", id, err)
}

func (s *Server) respondDelete(c *gin.Context, kind, id string, err error) {
	switch {
	case errors.Is(err, errNotFound):
		abortError(c, http.StatusNotFound, fmt.Errorf("%s %q not found", kind, id))
	case err != nil:
		abortError(c, http.StatusInternalServerError, err)
	default:
		klog.InfoS("Removed", "kind", kind, "id", id)
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) handleOptimize(c *gin.Context) {
	var req optimizeRequest
	// An empty body optimizes the stored workspace
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	if req.Inventory == nil || req.Orders == nil {
		ws, err := s.store.Load()
		if err != nil {
			abortError(c, http.StatusInternalServerError, err)
			return
		}
		if req.Inventory == nil {
			req.Inventory = ws.Inventory
		}
		if req.Orders == nil {
			req.Orders = ws.Orders
		}
	}

	result := s.optimizer.Optimize(req.Inventory, req.Orders)
	klog.InfoS("Optimized",
		"sheets", len(result.UsedScraps),
		"placed", result.TotalFitted(),
		"pending", len(result.PendingOrders))
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleQuickCheck(c *gin.Context) {
	var req quickCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		abortError(c, http.StatusBadRequest, fmt.Errorf("width and height must be positive"))
		return
	}

	if req.Orders == nil {
		ws, err := s.store.Load()
		if err != nil {
			abortError(c, http.StatusInternalServerError, err)
			return
		}
		req.Orders = ws.Orders
	}

	c.JSON(http.StatusOK, s.optimizer.QuickCheck(req.Width, req.Height, req.Orders))
}

func (s *Server) handleCompare(c *gin.Context) {
	ws, err := s.store.Load()
	if err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}
	scenarios := engine.BuildDefaultScenarios(ws.Inventory, s.cfg)
	c.JSON(http.StatusOK, engine.CompareScenarios(scenarios, ws.Orders))
}

func (s *Server) handleChart(c *gin.Context) {
	ws, err := s.store.Load()
	if err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}

	result := s.optimizer.Optimize(ws.Inventory, ws.Orders)
	if len(result.UsedScraps) == 0 {
		abortError(c, http.StatusNotFound, fmt.Errorf("no sheets used by the current workspace"))
		return
	}

	var buf bytes.Buffer
	if err := export.RenderWasteChart(&buf, result); err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
