package config

// DefaultConfigTOML is the commented configuration template written by
// `codewiki init`. Every value shown is the built-in default.
const DefaultConfigTOML = `# codewiki configuration file
#
# codewiki derives module structure, dependency direction, cohesion and
# architectural roles from two precomputed artifacts: module_tree.json and
# dependency_graph.json. Uncomment and adjust the settings you need.

[analysis]
# Cohesion labels: a module is "high" above the high threshold, "moderate"
# above the moderate threshold, "low" otherwise.
# cohesion_high_threshold = 0.7
# cohesion_moderate_threshold = 0.4

# Layered pattern: distinct roles required, and the size the largest role
# group must reach.
# layered_min_roles = 3
# layered_min_role_members = 2

# Plugin pattern: how many plugin-named components flag the pattern.
# plugin_min_components = 2

# Facade pattern: external dependents and internal dependencies a facade
# candidate needs.
# facade_min_external_deps = 3
# facade_min_internal_deps = 3

# Globs used to locate the input artifacts under the analyzed paths.
# tree_patterns = ["**/module_tree.json"]
# graph_patterns = ["**/dependency_graph.json"]

[output]
# Report encoding: text, json, yaml, csv or dot.
# format = "text"

# Where report files are written.
# directory = ".codewiki/reports"
`
