package relay

import "testing"

func TestEndpointRouteKeysKeepMajorParameterAndTemplateMinor(t *testing.T) {
	cases := []struct {
		name      string
		build     func() (string, string)
		wantURI   string
		wantRoute string
	}{
		{
			name: "create message",
			build: func() (string, string) {
				return endpointCreateMessage("123")
			},
			wantURI:   baseURL + "/channels/123/messages",
			wantRoute: "POST /channels/123/messages",
		},
		{
			name: "edit message",
			build: func() (string, string) {
				return endpointEditMessage("123", "456")
			},
			wantURI:   baseURL + "/channels/123/messages/456",
			wantRoute: "PATCH /channels/123/messages/:id",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			uri, route := c.build()
			if uri != c.wantURI {
				t.Errorf("uri = %q, want %q", uri, c.wantURI)
			}

			if route != c.wantRoute {
				t.Errorf("route = %q, want %q", route, c.wantRoute)
			}
		})
	}
}

func TestEndpointRouteKeysDifferByChannelForBucketIsolation(t *testing.T) {
	_, routeA := endpointCreateMessage("1")
	_, routeB := endpointCreateMessage("2")

	if routeA == routeB {
		t.Fatal("route keys for distinct channels must differ so their buckets don't collide")
	}
}
