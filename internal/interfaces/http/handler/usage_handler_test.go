package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usagetrack/backend/internal/interfaces/http/dto"
)

func TestUsageListEndpoint(t *testing.T) {
	t.Run("owner lists own records in the page envelope", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		env.seedUsage(t, owner, usageType.ID, 10)
		env.seedUsage(t, owner, usageType.ID, 20)
		env.actAsUser(owner)

		w := env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage", nil)

		mustStatus(t, w, http.StatusOK)
		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["count"])
		results, ok := body["results"].([]any)
		require.True(t, ok)
		assert.Len(t, results, 2)
		assert.Nil(t, body["next"])
		assert.Nil(t, body["previous"])
	})

	t.Run("pagination links follow limit and offset", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		for i := 0; i < 5; i++ {
			env.seedUsage(t, owner, usageType.ID, float64(i))
		}
		env.actAsUser(owner)

		w := env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage?limit=2&offset=2", nil)

		mustStatus(t, w, http.StatusOK)
		body := decodeBody(t, w)
		assert.Equal(t, float64(5), body["count"])
		next, _ := body["next"].(string)
		prev, _ := body["previous"].(string)
		assert.Contains(t, next, "offset=4")
		assert.Contains(t, prev, "offset=0")
	})

	t.Run("unknown orderby field is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		env.actAsUser(owner)

		w := env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage?orderby=password", nil)

		mustStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})

	t.Run("bad order direction is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		env.actAsUser(owner)

		w := env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage?order=sideways", nil)

		mustStatus(t, w, http.StatusBadRequest)
	})

	t.Run("malformed start_date is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		env.actAsUser(owner)

		w := env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage?start_date=yesterday", nil)

		mustStatus(t, w, http.StatusBadRequest)
	})

	t.Run("date range filters records", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		env.seedUsage(t, owner, usageType.ID, 10)
		env.actAsUser(owner)

		before := testUsageAt.Add(-time.Hour).Format(time.RFC3339)
		w := env.request(t, http.MethodGet,
			fmt.Sprintf("/user/%s/usage?end_date=%s", owner.ID, before), nil)

		mustStatus(t, w, http.StatusOK)
		assert.Equal(t, float64(0), decodeBody(t, w)["count"])
	})

	t.Run("other user's listing is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		intruder := env.seedUser(t, "howard")
		env.actAsUser(intruder)

		w := env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage", nil)

		mustStatus(t, w, http.StatusForbidden)
		assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, w))
	})

	t.Run("admin lists anyone's records", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		admin := env.seedUser(t, "sheldon")
		env.actAsAdmin(admin)

		w := env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage", nil)

		mustStatus(t, w, http.StatusOK)
	})
}

func TestUsageCreateEndpoint(t *testing.T) {
	t.Run("owner records usage with nested owner and type", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		env.actAsUser(owner)

		w := env.request(t, http.MethodPost, "/user/"+owner.ID.String()+"/usage", map[string]any{
			"usage_type_id": usageType.ID,
			"usage_at":      testUsageAt.Format(time.RFC3339),
			"amount":        42.5,
		})

		mustStatus(t, w, http.StatusCreated)
		body := decodeBody(t, w)
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "penny", user["name"])
		usage, ok := body["usage"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "electricity", usage["name"])
		assert.Equal(t, "kWh", usage["unit"])
		assert.Equal(t, 42.5, usage["amount"])
	})

	t.Run("body owner mismatch is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		other := env.seedUser(t, "howard")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		env.actAsUser(owner)

		w := env.request(t, http.MethodPost, "/user/"+owner.ID.String()+"/usage", map[string]any{
			"user_id":       other.ID.String(),
			"usage_type_id": usageType.ID,
			"usage_at":      testUsageAt.Format(time.RFC3339),
			"amount":        1,
		})

		mustStatus(t, w, http.StatusForbidden)
	})

	t.Run("unknown usage type is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		env.actAsUser(owner)

		w := env.request(t, http.MethodPost, "/user/"+owner.ID.String()+"/usage", map[string]any{
			"usage_type_id": 999,
			"usage_at":      testUsageAt.Format(time.RFC3339),
			"amount":        1,
		})

		mustStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing fields report validation details", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		env.actAsUser(owner)

		w := env.request(t, http.MethodPost, "/user/"+owner.ID.String()+"/usage", map[string]any{
			"amount": 1,
		})

		mustStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})
}

func TestUsageSingleRecordEndpoints(t *testing.T) {
	t.Run("get returns the record", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		record := env.seedUsage(t, owner, usageType.ID, 10)
		env.actAsUser(owner)

		w := env.request(t, http.MethodGet, fmt.Sprintf("/user/%s/usage/%d", owner.ID, record.ID), nil)

		mustStatus(t, w, http.StatusOK)
		assert.Equal(t, float64(record.ID), decodeBody(t, w)["id"])
	})

	t.Run("record under the wrong owner path is a 404", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		other := env.seedUser(t, "howard")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		record := env.seedUsage(t, other, usageType.ID, 10)
		env.actAsUser(owner)

		w := env.request(t, http.MethodGet, fmt.Sprintf("/user/%s/usage/%d", owner.ID, record.ID), nil)

		mustStatus(t, w, http.StatusNotFound)
	})

	t.Run("update rewrites the record", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		record := env.seedUsage(t, owner, usageType.ID, 10)
		env.actAsUser(owner)

		w := env.request(t, http.MethodPut, fmt.Sprintf("/user/%s/usage/%d", owner.ID, record.ID), map[string]any{
			"usage_type_id": usageType.ID,
			"usage_at":      testUsageAt.Add(time.Hour).Format(time.RFC3339),
			"amount":        99,
		})

		mustStatus(t, w, http.StatusOK)
		usage, ok := decodeBody(t, w)["usage"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(99), usage["amount"])
	})

	t.Run("delete removes the record", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "penny")
		usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
		record := env.seedUsage(t, owner, usageType.ID, 10)
		env.actAsUser(owner)

		w := env.request(t, http.MethodDelete, fmt.Sprintf("/user/%s/usage/%d", owner.ID, record.ID), nil)
		mustStatus(t, w, http.StatusOK)
		assert.Contains(t, decodeBody(t, w)["message"], "has been deleted")

		w = env.request(t, http.MethodGet, fmt.Sprintf("/user/%s/usage/%d", owner.ID, record.ID), nil)
		mustStatus(t, w, http.StatusNotFound)
	})
}

func TestUsageBulkDeleteEndpoint(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "penny")
	usageType := env.seedUsageType(t, "electricity", "kWh", 1.5)
	for i := 0; i < 3; i++ {
		env.seedUsage(t, owner, usageType.ID, float64(i))
	}
	env.actAsUser(owner)

	w := env.request(t, http.MethodDelete, "/user/"+owner.ID.String()+"/usage", nil)

	mustStatus(t, w, http.StatusOK)
	assert.Equal(t, float64(3), decodeBody(t, w)["deleted"])

	w = env.request(t, http.MethodGet, "/user/"+owner.ID.String()+"/usage", nil)
	mustStatus(t, w, http.StatusOK)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}
