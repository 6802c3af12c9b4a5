package modules

import (
	"emperror.dev/errors"
)

// RegisterDefaults registers the built-in module set of the host application
// with the provided registry.
func RegisterDefaults(r *Registry) error {
	for _, d := range defaultModules() {
		if err := r.Register(d); err != nil {
			return errors.Wrapf(err, "failed to register module %s", d.Key)
		}
	}
	return nil
}

func defaultModules() []*Descriptor {
	return []*Descriptor{
		{
			Key:              "endpoint/single-endpoint",
			Name:             "Single Endpoint",
			Description:      "Expose the public GraphQL API under a single endpoint.",
			EnabledByDefault: true,
			CanBeDisabled:    false,
			HasDocs:          true,
			Settings: []SettingDefinition{
				{
					Input:        "path",
					Name:         "Endpoint path",
					Description:  "URL path under which the GraphQL API is served.",
					Type:         SettingTypePath,
					DefaultValue: "/graphql",
				},
			},
		},
		{
			Key:              "clients/graphiql",
			Name:             "GraphiQL Client",
			Description:      "Serve the GraphiQL query editor against the public endpoint.",
			EnabledByDefault: true,
			CanBeDisabled:    true,
			DependsOn:        []string{"endpoint/single-endpoint"},
			HasDocs:          true,
			Settings: []SettingDefinition{
				{
					Input:        "clientPath",
					Name:         "Client path",
					Description:  "URL path under which the GraphiQL client is served.",
					Type:         SettingTypePath,
					DefaultValue: "/graphiql",
				},
				{
					Name:        "Keyboard shortcuts",
					Description: "The query editor supports the standard GraphiQL shortcuts.",
				},
			},
		},
		{
			Key:              "clients/interactive-schema",
			Name:             "Interactive Schema",
			Description:      "Serve an interactive voyager-style visualization of the schema.",
			EnabledByDefault: true,
			CanBeDisabled:    true,
			DependsOn:        []string{"endpoint/single-endpoint"},
			HasDocs:          true,
			Settings: []SettingDefinition{
				{
					Input:        "clientPath",
					Name:         "Client path",
					Description:  "URL path under which the schema visualizer is served.",
					Type:         SettingTypePath,
					DefaultValue: "/schema",
				},
			},
		},
		{
			Key:              "schema/public-introspection",
			Name:             "Public Introspection",
			Description:      "Allow unauthenticated introspection queries against the schema.",
			EnabledByDefault: false,
			CanBeDisabled:    true,
			HasDocs:          true,
			Settings: []SettingDefinition{
				{
					Input:        "enableForUnauthenticated",
					Name:         "Enable for unauthenticated requests",
					Type:         SettingTypeBool,
					DefaultValue: false,
				},
			},
		},
		{
			Key:              "performance/cache-control",
			Name:             "Cache Control",
			Description:      "Attach Cache-Control headers to persisted query responses.",
			EnabledByDefault: true,
			CanBeDisabled:    true,
			RequiresActivePlugins: []string{
				"GraphQL Persisted Queries",
			},
			Settings: []SettingDefinition{
				{
					Input:        "defaultMaxAge",
					Name:         "Default max-age",
					Description:  "Default max-age in seconds for cacheable responses.",
					Type:         SettingTypeInt,
					Min:          0,
					Max:          86400,
					DefaultValue: 3600,
				},
			},
		},
		{
			Key:              "schema/nested-mutations",
			Name:             "Nested Mutations",
			Description:      "Allow mutations to be executed from any type in the graph.",
			EnabledByDefault: false,
			CanBeDisabled:    true,
			RequiresInactivePlugins: []string{
				"Legacy GraphQL Bridge",
			},
			Settings: []SettingDefinition{
				{
					Input:        "scheme",
					Name:         "Mutation scheme",
					Type:         SettingTypeEnum,
					Options:      []string{"standard", "nested", "nested-without-redundant-fields"},
					DefaultValue: "standard",
				},
			},
		},
		{
			Key:              "integrations/remote-schema",
			Name:             "Remote Schema",
			Description:      "Stitch a remote GraphQL schema into the public endpoint.",
			EnabledByDefault: false,
			CanBeDisabled:    true,
			Settings: []SettingDefinition{
				{
					Input:        "remoteEndpointURL",
					Name:         "Remote endpoint URL",
					Type:         SettingTypeURL,
					DefaultValue: "",
				},
			},
		},
	}
}
