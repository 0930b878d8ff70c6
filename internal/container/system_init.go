package container

import (
	syshandler "recommender/internal/api/handlers/system"
)

// GetSystemHandler возвращает обработчик системных endpoint'ов
func (c *Container) GetSystemHandler() (*syshandler.Handler, error) {
	if c.systemHandler != nil {
		return c.systemHandler, nil
	}

	c.systemHandler = syshandler.NewHandler(c.metrics, Version)
	return c.systemHandler, nil
}
