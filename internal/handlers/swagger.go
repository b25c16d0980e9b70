package handlers

// @title User CRUD API
// @version 1.0
// @description User records in a key-value table, addressed by version 1 UUIDs.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @tag.name users
// @tag.description User management operations
