package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cucumber/godog"
)

// registerSteps wires all step definitions into the scenario context.
func registerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, aRegisteredUser)
	ctx.Step(`^"([^"]*)" is logged in with password "([^"]*)"$`, userLogsIn)
	ctx.Step(`^the admin is logged in$`, adminLogsIn)
	ctx.Step(`^"([^"]*)" sends (GET|DELETE) "([^"]*)"$`, sendWithoutBody)
	ctx.Step(`^"([^"]*)" sends (POST|PUT) "([^"]*)" with body:$`, sendWithBody)
	ctx.Step(`^an anonymous client sends (GET|POST) "([^"]*)"$`, anonymousSend)
	ctx.Step(`^an anonymous client sends (POST|PUT) "([^"]*)" with body:$`, anonymousSendWithBody)
	ctx.Step(`^the response status should be (\d+)$`, responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, responseFieldShouldBe)
	ctx.Step(`^the response should contain field "([^"]*)"$`, responseShouldContainField)
	ctx.Step(`^the response list "([^"]*)" should have (\d+) items?$`, responseListShouldHave)
}

func (tc *TestContext) doRequest(email, method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		token, ok := tc.accessTokens[email]
		if !ok {
			return fmt.Errorf("no access token for %q, log the user in first", email)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) parsedBody() (map[string]interface{}, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &parsed); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w (body: %s)", err, tc.responseBody)
	}
	return parsed, nil
}

func aRegisteredUser(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	payload := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	if err := tc.doRequest("", http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(payload)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration failed with %d: %s", tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func userLogsIn(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	payload := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	if err := tc.doRequest("", http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(payload)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with %d: %s", tc.response.StatusCode, tc.responseBody)
	}

	body, err := tc.parsedBody()
	if err != nil {
		return err
	}
	access, _ := body["access_token"].(string)
	refresh, _ := body["refresh_token"].(string)
	if access == "" || refresh == "" {
		return fmt.Errorf("login response missing tokens: %s", tc.responseBody)
	}
	tc.accessTokens[email] = access
	tc.refreshTokens[email] = refresh
	tc.currentUser = email
	return nil
}

func adminLogsIn(ctx context.Context) error {
	return userLogsIn(ctx, "admin@example.com", "admin-password-123")
}

func sendWithoutBody(ctx context.Context, email, method, path string) error {
	return GetTestContext(ctx).doRequest(email, method, path, nil)
}

func sendWithBody(ctx context.Context, email, method, path string, body *godog.DocString) error {
	return GetTestContext(ctx).doRequest(email, method, path, bytes.NewBufferString(body.Content))
}

func anonymousSend(ctx context.Context, method, path string) error {
	return GetTestContext(ctx).doRequest("", method, path, nil)
}

func anonymousSendWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	return GetTestContext(ctx).doRequest("", method, path, bytes.NewBufferString(body.Content))
}

func responseStatusShouldBe(ctx context.Context, status int) error {
	tc := GetTestContext(ctx)
	if tc.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)", status, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func responseFieldShouldBe(ctx context.Context, field, want string) error {
	tc := GetTestContext(ctx)
	body, err := tc.parsedBody()
	if err != nil {
		return err
	}
	value, ok := body[field]
	if !ok {
		return fmt.Errorf("field %q not present in response: %s", field, tc.responseBody)
	}
	if got := fmt.Sprintf("%v", value); got != want {
		return fmt.Errorf("expected field %q to be %q, got %q", field, want, got)
	}
	return nil
}

func responseShouldContainField(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	body, err := tc.parsedBody()
	if err != nil {
		return err
	}
	if _, ok := body[field]; !ok {
		return fmt.Errorf("field %q not present in response: %s", field, tc.responseBody)
	}
	return nil
}

func responseListShouldHave(ctx context.Context, field string, count int) error {
	tc := GetTestContext(ctx)
	body, err := tc.parsedBody()
	if err != nil {
		return err
	}
	list, ok := body[field].([]interface{})
	if !ok {
		return fmt.Errorf("field %q is not a list: %s", field, tc.responseBody)
	}
	if len(list) != count {
		return fmt.Errorf("expected %d items in %q, got %d", count, field, len(list))
	}
	return nil
}
