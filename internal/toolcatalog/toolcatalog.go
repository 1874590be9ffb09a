// Package toolcatalog is the static registry of every tool name the bridge
// exposes to the agent, its internal job_type tag, and its advisory
// JSON-Schema-like input description.
//
// Names and job_type strings here are the bridge's public API (spec.md §6)
// and §4.D requires they be preserved bit-exact; this table was transcribed
// from the original Python bridge's _build_tools()/_build_job() tables.
package toolcatalog

// Schema is a JSON-Schema-like object. It is advisory only — the bridge
// never validates a call's arguments against it.
type Schema map[string]any

// Descriptor describes one callable tool.
type Descriptor struct {
	Name        string `json:"name"`
	JobType     string `json:"-"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// StatusToolName is answered locally by the dispatcher and never reaches
// the plugin over the wire.
const StatusToolName = "studio_get_connection_status"

// instanceRefProps mirrors the Python source's _INSTANCE_REF_PROPS: the
// shared "which instance" addressing fragment used by most instance tools.
func instanceRefProps() Schema {
	return Schema{
		"path": Schema{
			"type":        "string",
			"description": "Dot-separated path, e.g. 'Workspace.Baseplate'.",
		},
		"pathArray": Schema{
			"type":        "array",
			"items":       Schema{"type": "string"},
			"description": "Path as array of names, e.g. ['Workspace','Baseplate'].",
		},
		"id": Schema{
			"type":        "string",
			"description": "Debug id returned by a previous call.",
		},
		"client_id": Schema{"type": "string"},
	}
}

func regionProps() Schema {
	return Schema{
		"regionMin":  Schema{"type": "object", "description": `{"x":0,"y":0,"z":0} minimum corner of the region.`},
		"regionMax":  Schema{"type": "object", "description": `{"x":100,"y":50,"z":100} maximum corner.`},
		"resolution": Schema{"type": "integer", "description": "Voxel resolution in studs (multiple of 4, default 4)."},
		"client_id":  Schema{"type": "string"},
	}
}

// refSchema builds an object schema from the shared instance-ref properties
// plus whatever extra properties and required fields this particular tool
// needs, mirroring the Python source's _ref_schema helper.
func refSchema(extra Schema, required ...string) Schema {
	props := instanceRefProps()
	for k, v := range extra {
		props[k] = v
	}
	s := Schema{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func clientOnlySchema() Schema {
	return Schema{"type": "object", "properties": Schema{"client_id": Schema{"type": "string"}}}
}

func objSchema(props Schema, required ...string) Schema {
	s := Schema{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// All is the full, ordered tool catalog.
var All = buildCatalog()

func buildCatalog() []Descriptor {
	return []Descriptor{
		{
			Name:        StatusToolName,
			Description: "Check if the Roblox Studio plugin is connected to the bridge.",
			InputSchema: clientOnlySchema(),
		},

		// -- Instance tools --------------------------------------------------
		{Name: "roblox_list_services", JobType: "list_services",
			Description: "List top-level services in the current place.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_get_children", JobType: "get_children",
			Description: "Get the direct children of an instance.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_get_descendants", JobType: "get_descendants",
			Description: "Get all descendants of an instance. Can be large - prefer get_tree for an overview.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_get_instance", JobType: "get_instance",
			Description: "Get info (name, className, fullName) for a single instance.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_find_instances", JobType: "find_instances",
			Description: "Find instances matching name, className, and/or tag under an ancestor.",
			InputSchema: objSchema(Schema{
				"name":              Schema{"type": "string", "description": "Exact Name match."},
				"className":         Schema{"type": "string", "description": "Exact ClassName match."},
				"tag":               Schema{"type": "string", "description": "Must have this CollectionService tag."},
				"ancestorPath":      Schema{"type": "string"},
				"ancestorPathArray": Schema{"type": "array", "items": Schema{"type": "string"}},
				"client_id":         Schema{"type": "string"},
			})},
		{Name: "roblox_get_tree", JobType: "get_tree",
			Description: "Get a compact recursive tree of an instance hierarchy. Returns name, className, and for scripts the line count. Use maxDepth to limit depth (default 5) and maxChildren to cap children per node (default 50).",
			InputSchema: refSchema(Schema{
				"maxDepth":    Schema{"type": "integer", "description": "Max tree depth (default 5)."},
				"maxChildren": Schema{"type": "integer", "description": "Max children per node (default 50)."},
			})},
		{Name: "roblox_create_instance", JobType: "create_instance",
			Description: "Create a new instance. Set properties (including Name, Source for scripts) via the properties dict. Supports rich types via _type objects.",
			InputSchema: objSchema(Schema{
				"className":       Schema{"type": "string"},
				"parentPath":      Schema{"type": "string"},
				"parentPathArray": Schema{"type": "array", "items": Schema{"type": "string"}},
				"properties":      Schema{"type": "object", "description": "Key/value map of properties to set. Use _type objects for rich types."},
				"client_id":       Schema{"type": "string"},
			}, "className")},
		{Name: "roblox_delete_instance", JobType: "delete_instance",
			Description: "Destroy an instance and all its descendants. Undoable via Ctrl+Z.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_clone_instance", JobType: "clone_instance",
			Description: "Clone an instance (and its descendants). Optionally place under a new parent and rename. Undoable.",
			InputSchema: refSchema(Schema{
				"newParentPath":      Schema{"type": "string"},
				"newParentPathArray": Schema{"type": "array", "items": Schema{"type": "string"}},
				"newName":            Schema{"type": "string", "description": "Rename the clone."},
			})},
		{Name: "roblox_reparent_instance", JobType: "reparent_instance",
			Description: "Move an instance to a new parent. Undoable.",
			InputSchema: refSchema(Schema{
				"newParentPath":      Schema{"type": "string"},
				"newParentPathArray": Schema{"type": "array", "items": Schema{"type": "string"}},
			}, "newParentPath")},
		{Name: "roblox_set_name", JobType: "set_name",
			Description: "Rename an instance. Undoable.",
			InputSchema: refSchema(Schema{"name": Schema{"type": "string"}}, "name")},
		{Name: "roblox_select_instance", JobType: "select_instance",
			Description: "Select an instance in the Studio Explorer (for visibility).",
			InputSchema: refSchema(nil)},

		// -- Selection ---------------------------------------------------------
		{Name: "roblox_get_selection", JobType: "get_selection",
			Description: "Get the instances currently selected in the Studio Explorer.",
			InputSchema: clientOnlySchema()},

		// -- Property / Attribute tools ------------------------------------------
		{Name: "roblox_get_properties", JobType: "get_properties",
			Description: "Read specific properties from an instance. Returns rich type objects with _type field for complex types (Color3, Vector3, CFrame, UDim2, BrickColor, EnumItem, etc.).",
			InputSchema: refSchema(Schema{
				"properties": Schema{"type": "array", "items": Schema{"type": "string"}, "description": "Property names to read."},
			}, "properties")},
		{Name: "roblox_set_properties", JobType: "set_properties",
			Description: `Set properties on an instance. Undoable. For complex types, use _type objects: {"_type":"Color3","r":255,"g":0,"b":0}, {"_type":"Vector3","x":1,"y":2,"z":3}, etc.`,
			InputSchema: refSchema(Schema{
				"properties": Schema{"type": "object", "description": "Key/value map of properties to set. Use _type objects for rich types."},
			}, "properties")},
		{Name: "roblox_get_attributes", JobType: "get_attributes",
			Description: "Get all custom attributes on an instance. Returns rich type objects for complex attribute values.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_set_attributes", JobType: "set_attributes",
			Description: "Set custom attributes on an instance. Undoable. Supports rich type objects.",
			InputSchema: refSchema(Schema{"attributes": Schema{"type": "object"}}, "attributes")},
		{Name: "roblox_get_all_properties", JobType: "get_all_properties",
			Description: "Read ALL properties from an instance using ReflectionService. Returns every readable, non-deprecated property with its current value.",
			InputSchema: refSchema(nil)},

		// -- Tag tools ------------------------------------------------------------
		{Name: "roblox_get_tags", JobType: "get_tags",
			Description: "Get all CollectionService tags on an instance.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_add_tag", JobType: "add_tag",
			Description: "Add a CollectionService tag to an instance. Undoable.",
			InputSchema: refSchema(Schema{"tag": Schema{"type": "string"}}, "tag")},
		{Name: "roblox_remove_tag", JobType: "remove_tag",
			Description: "Remove a CollectionService tag from an instance. Undoable.",
			InputSchema: refSchema(Schema{"tag": Schema{"type": "string"}}, "tag")},

		// -- Script tools -----------------------------------------------------------
		{Name: "roblox_read_script", JobType: "read_script",
			Description: "Read the full Source of a Script/LocalScript/ModuleScript. For large scripts prefer get_script_lines to read a specific range.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_write_script", JobType: "write_script",
			Description: "Overwrite the full Source of a script. Undoable. WARNING: For partial edits use patch_script instead.",
			InputSchema: refSchema(Schema{"source": Schema{"type": "string"}}, "source")},
		{Name: "roblox_patch_script", JobType: "patch_script",
			Description: "Apply line-based patches to a script without rewriting the entire source. Undoable. Ops: insert, replace, delete, append, prepend. ALWAYS provide expectedContent for replace/delete and expectedContext for insert.",
			InputSchema: refSchema(Schema{
				"patches": Schema{
					"type": "array",
					"items": Schema{
						"type": "object",
						"properties": Schema{
							"op":              Schema{"type": "string", "enum": []string{"insert", "replace", "delete", "append", "prepend"}},
							"lineStart":       Schema{"type": "integer"},
							"lineEnd":         Schema{"type": "integer"},
							"content":         Schema{"type": "string"},
							"expectedContent": Schema{"type": "string"},
							"expectedContext": Schema{"type": "string"},
						},
						"required": []string{"op"},
					},
				},
			}, "patches")},
		{Name: "roblox_get_script_lines", JobType: "get_script_lines",
			Description: "Read a specific line range from a script. Omit startLine/endLine to get line count only.",
			InputSchema: refSchema(Schema{
				"startLine": Schema{"type": "integer"},
				"endLine":   Schema{"type": "integer"},
			})},
		{Name: "roblox_search_script", JobType: "search_script",
			Description: "Search a script's source for a string or Lua pattern.",
			InputSchema: refSchema(Schema{
				"query":         Schema{"type": "string"},
				"usePattern":    Schema{"type": "boolean"},
				"caseSensitive": Schema{"type": "boolean"},
				"contextLines":  Schema{"type": "integer"},
				"maxResults":    Schema{"type": "integer"},
			}, "query")},
		{Name: "roblox_get_script_functions", JobType: "get_script_functions",
			Description: "List all function definitions in a script with line numbers and types.",
			InputSchema: refSchema(nil)},
		{Name: "roblox_search_across_scripts", JobType: "search_across_scripts",
			Description: "Search ALL scripts under an ancestor for a query string.",
			InputSchema: objSchema(Schema{
				"query":               Schema{"type": "string"},
				"ancestorPath":        Schema{"type": "string"},
				"ancestorPathArray":   Schema{"type": "array", "items": Schema{"type": "string"}},
				"usePattern":          Schema{"type": "boolean"},
				"caseSensitive":       Schema{"type": "boolean"},
				"maxScripts":          Schema{"type": "integer"},
				"maxMatchesPerScript": Schema{"type": "integer"},
				"client_id":           Schema{"type": "string"},
			}, "query")},

		// -- Studio helpers -----------------------------------------------------------
		{Name: "roblox_run_code", JobType: "run_code",
			Description: "Execute arbitrary Lua code within Studio and return a serialized result.",
			InputSchema: objSchema(Schema{
				"code":      Schema{"type": "string"},
				"client_id": Schema{"type": "string"},
			}, "code")},
		{Name: "roblox_insert_model", JobType: "insert_model",
			Description: "Insert a Marketplace asset into Workspace using InsertService.",
			InputSchema: objSchema(Schema{
				"assetId":   Schema{"type": "string"},
				"client_id": Schema{"type": "string"},
			}, "assetId")},
		{Name: "roblox_get_console_output", JobType: "get_console_output",
			Description: "Read the buffered Studio Output log captured by the plugin.",
			InputSchema: objSchema(Schema{
				"since":      Schema{"type": "number"},
				"maxEntries": Schema{"type": "integer"},
				"client_id":  Schema{"type": "string"},
			})},
		{Name: "roblox_start_stop_play", JobType: "start_stop_play",
			Description: "Switch Studio between Edit, Play, Run, or Test modes.",
			InputSchema: objSchema(Schema{
				"mode":      Schema{"type": "string"},
				"action":    Schema{"type": "string"},
				"client_id": Schema{"type": "string"},
			}, "mode")},
		{Name: "roblox_get_studio_mode", JobType: "get_studio_mode",
			Description: "Query the current Studio run mode and whether play mode is active.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_run_script_in_play_mode", JobType: "run_script_in_play_mode",
			Description: "Run a Lua snippet while Studio is in Play or Run mode.",
			InputSchema: objSchema(Schema{
				"code":      Schema{"type": "string"},
				"client_id": Schema{"type": "string"},
			}, "code")},

		// -- ScriptEditorService ------------------------------------------------------
		{Name: "roblox_open_script", JobType: "open_script",
			Description: "Open a script in the Studio script editor tab and optionally navigate to a line.",
			InputSchema: refSchema(Schema{"line": Schema{"type": "integer"}})},
		{Name: "roblox_get_open_scripts", JobType: "get_open_scripts",
			Description: "List all scripts currently open in the Studio script editor.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_close_script", JobType: "close_script",
			Description: "Close a script's tab in the Studio script editor.",
			InputSchema: refSchema(nil)},

		// -- ChangeHistoryService -------------------------------------------------------
		{Name: "roblox_undo", JobType: "undo",
			Description: "Undo the last action in Studio. Equivalent to Ctrl+Z.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_redo", JobType: "redo",
			Description: "Redo the last undone action in Studio. Equivalent to Ctrl+Y.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_set_waypoint", JobType: "set_waypoint",
			Description: "Set a named undo/redo waypoint.",
			InputSchema: objSchema(Schema{
				"name":      Schema{"type": "string"},
				"client_id": Schema{"type": "string"},
			})},

		// -- Terrain tools --------------------------------------------------------------
		{Name: "roblox_terrain_fill_block", JobType: "terrain_fill_block",
			Description: "Fill a box-shaped volume with a terrain material. Undoable. cframe specifies the centre (position + optional rotation). size specifies the bounding box in studs. Common materials: Grass, Rock, Water, Sand, Snow, Ground, Mud, Asphalt, Brick, Concrete, Ice, Salt, Sandstone, Slate, SmoothPlastic, WoodPlanks.",
			InputSchema: objSchema(Schema{
				"cframe":    Schema{"type": "object", "description": `Position as {"x":0,"y":0,"z":0} or full 12-component CFrame {"components":[...]}.`},
				"size":      Schema{"type": "object", "description": `{"x":10,"y":5,"z":10} in studs.`},
				"material":  Schema{"type": "string", "description": "Terrain material name."},
				"client_id": Schema{"type": "string"},
			}, "cframe", "size", "material")},
		{Name: "roblox_terrain_fill_ball", JobType: "terrain_fill_ball",
			Description: "Fill a sphere of terrain material at a given centre and radius. Undoable.",
			InputSchema: objSchema(Schema{
				"center":    Schema{"type": "object", "description": `{"x":0,"y":0,"z":0}`},
				"radius":    Schema{"type": "number", "description": "Radius in studs."},
				"material":  Schema{"type": "string"},
				"client_id": Schema{"type": "string"},
			}, "center", "radius", "material")},
		{Name: "roblox_terrain_fill_cylinder", JobType: "terrain_fill_cylinder",
			Description: "Fill a cylinder of terrain material. Undoable. The cylinder axis is aligned with the CFrame's Y axis.",
			InputSchema: objSchema(Schema{
				"cframe":    Schema{"type": "object", "description": `Centre of the cylinder {"x":0,"y":0,"z":0}.`},
				"height":    Schema{"type": "number", "description": "Height of the cylinder in studs."},
				"radius":    Schema{"type": "number", "description": "Radius of the cylinder in studs."},
				"material":  Schema{"type": "string"},
				"client_id": Schema{"type": "string"},
			}, "cframe", "height", "radius", "material")},
		{Name: "roblox_terrain_replace_material", JobType: "terrain_replace_material",
			Description: "Replace every voxel of one terrain material with another inside a Region3. Undoable. Great for large-scale reskins, e.g. swap all Sand -> Ground across a level.",
			InputSchema: objSchema(mergeSchema(regionProps(), Schema{
				"from": Schema{"type": "string", "description": "Material to replace (e.g. Sand)."},
				"to":   Schema{"type": "string", "description": "Replacement material (e.g. Ground)."},
			}), "regionMin", "regionMax", "from", "to")},
		{Name: "roblox_terrain_read_voxels", JobType: "terrain_read_voxels",
			Description: "Read terrain voxel data (material + occupancy) from a region. For regions <=4096 voxels: returns full per-voxel list. For larger regions: returns a material-frequency summary only. Use a higher resolution (16 or 32) to sample large areas without hitting the limit.",
			InputSchema: objSchema(regionProps(), "regionMin", "regionMax")},
		{Name: "roblox_terrain_clear_region", JobType: "terrain_clear_region",
			Description: "Remove all terrain (fill with Air) within a Region3. Undoable.",
			InputSchema: objSchema(Schema{
				"regionMin": Schema{"type": "object"},
				"regionMax": Schema{"type": "object"},
				"client_id": Schema{"type": "string"},
			}, "regionMin", "regionMax")},

		// -- Bulk tools -------------------------------------------------------------
		{Name: "roblox_bulk_create_instances", JobType: "bulk_create_instances",
			Description: "Create up to 200 instances in a single round-trip, all in one undo waypoint. Each entry needs className; optionally parentPath/parentPathArray and a properties dict that supports _type rich-type objects. Much faster than calling create_instance N times for large batch work.",
			InputSchema: objSchema(Schema{
				"instances": Schema{
					"type":        "array",
					"maxItems":    200,
					"description": "Array of instance specs to create.",
					"items": Schema{
						"type": "object",
						"properties": Schema{
							"className":       Schema{"type": "string"},
							"parentPath":      Schema{"type": "string"},
							"parentPathArray": Schema{"type": "array", "items": Schema{"type": "string"}},
							"properties":      Schema{"type": "object"},
						},
						"required": []string{"className"},
					},
				},
				"client_id": Schema{"type": "string"},
			}, "instances")},
		{Name: "roblox_bulk_set_properties", JobType: "bulk_set_properties",
			Description: "Set properties on up to 200 instances in one round-trip, wrapped in one undo waypoint. Each operation is an instance ref (path/pathArray/id) plus a properties dict. Supports rich _type objects. Much faster than N individual set_properties calls.",
			InputSchema: objSchema(Schema{
				"operations": Schema{
					"type":     "array",
					"maxItems": 200,
					"items": Schema{
						"type": "object",
						"properties": Schema{
							"path":       Schema{"type": "string"},
							"pathArray":  Schema{"type": "array", "items": Schema{"type": "string"}},
							"id":         Schema{"type": "string"},
							"properties": Schema{"type": "object"},
						},
						"required": []string{"properties"},
					},
				},
				"client_id": Schema{"type": "string"},
			}, "operations")},
		{Name: "roblox_bulk_delete_instances", JobType: "bulk_delete_instances",
			Description: "Delete multiple instances in one round-trip, wrapped in one undo waypoint. All descendants are destroyed. Provide an array of instance refs.",
			InputSchema: objSchema(Schema{
				"instances": Schema{
					"type": "array",
					"items": Schema{
						"type": "object",
						"properties": Schema{
							"path":      Schema{"type": "string"},
							"pathArray": Schema{"type": "array", "items": Schema{"type": "string"}},
							"id":        Schema{"type": "string"},
						},
					},
				},
				"client_id": Schema{"type": "string"},
			}, "instances")},
		{Name: "roblox_find_and_replace_in_scripts", JobType: "find_and_replace_in_scripts",
			Description: "Find a plain string in all scripts under an ancestor and replace it everywhere. All changes wrapped in one undo waypoint. Set dryRun=true to preview matches without modifying. caseSensitive defaults to true. maxScripts caps modifications (default 50, max 200). Great for renaming a variable, function, or module require path across a codebase.",
			InputSchema: objSchema(Schema{
				"find":              Schema{"type": "string", "description": "Plain string to find."},
				"replace":           Schema{"type": "string", "description": "Replacement string."},
				"ancestorPath":      Schema{"type": "string"},
				"ancestorPathArray": Schema{"type": "array", "items": Schema{"type": "string"}},
				"caseSensitive":     Schema{"type": "boolean"},
				"maxScripts":        Schema{"type": "integer", "description": "Max scripts to modify (default 50)."},
				"dryRun":            Schema{"type": "boolean", "description": "Preview without modifying if true."},
				"client_id":         Schema{"type": "string"},
			}, "find", "replace")},

		// -- DataModel tools --------------------------------------------------------------
		{Name: "roblox_get_place_info", JobType: "get_place_info",
			Description: "Return metadata about the currently open place: PlaceId, GameId, name, PlaceVersion, gravity, StreamingEnabled, all Lighting service properties, and a summary of child counts for each major service.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_set_lighting", JobType: "set_lighting",
			Description: "Set one or more Lighting service properties. Undoable. Supports rich _type objects for Color3 values. Useful properties: TimeOfDay ('14:00:00'), Brightness, FogEnd, FogStart, FogColor, GlobalShadows, Technology (EnumItem with enumType='Technology').",
			InputSchema: objSchema(Schema{
				"properties": Schema{"type": "object", "description": "Key/value map of Lighting properties to set."},
				"client_id":  Schema{"type": "string"},
			}, "properties")},
		{Name: "roblox_get_workspace_info", JobType: "get_workspace_info",
			Description: "Return key Workspace-level settings useful for level design: Gravity, StreamingEnabled, streaming radii, wind settings, and the current camera CFrame.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_get_team_list", JobType: "get_team_list",
			Description: "Return all teams in the Teams service with their BrickColor and AutoAssignable setting.",
			InputSchema: clientOnlySchema()},
		{Name: "roblox_get_lighting_effects", JobType: "get_lighting_effects",
			Description: "Return all post-processing and lighting effects under the Lighting service (Bloom, DepthOfField, ColorCorrection, SunRays, etc.) including their key property values.",
			InputSchema: clientOnlySchema()},
	}
}

func mergeSchema(a, b Schema) Schema {
	out := Schema{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// byName indexes All for fast lookup.
var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(All))
	for _, d := range All {
		m[d.Name] = d
	}
	return m
}()

// Lookup returns the descriptor for a published tool name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}
