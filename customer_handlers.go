package main

import (
	"net/http"

	"aqso/service"

	"github.com/gin-gonic/gin"
)

const customerNotFound = "Customer not found"

func (s *server) listCustomersHandler(c *gin.Context) {
	items, err := s.customers.List(c.Request.Context())
	if err != nil {
		s.respondError(c, customerNotFound, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *server) createCustomerHandler(c *gin.Context) {
	var in service.CreateCustomerInput
	if !bindOptionalJSON(c, &in) {
		return
	}
	cust, err := s.customers.Create(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, customerNotFound, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (s *server) updateCustomerHandler(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": customerNotFound})
		return
	}
	var patch service.CustomerPatch
	if !bindOptionalJSON(c, &patch) {
		return
	}
	cust, err := s.customers.Update(c.Request.Context(), id, patch)
	if err != nil {
		s.respondError(c, customerNotFound, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (s *server) deleteCustomerHandler(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": customerNotFound})
		return
	}
	cust, err := s.customers.Delete(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, customerNotFound, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "customer": cust})
}
