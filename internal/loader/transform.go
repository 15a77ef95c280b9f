package loader

import (
	"strings"

	"github.com/kolah/scribe/internal/model"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/orderedmap"
	"go.yaml.in/yaml/v4"
)

// Transform converts the libopenapi model into the internal model. Map order
// from the document is preserved everywhere. References are kept as $ref
// strings and never followed, so cyclic documents transform fine.
func Transform(result *Result) (*model.Spec, error) {
	doc := result.Document.Model

	spec := &model.Spec{
		Info:     transformInfo(doc.Info),
		Servers:  transformServers(doc.Servers),
		Tags:     transformTags(doc.Tags),
		Security: transformSecurityRequirements(doc.Security),
	}

	if doc.Components != nil && doc.Components.Schemas != nil {
		for name, schemaProxy := range doc.Components.Schemas.FromOldest() {
			schema := transformSchemaProxy(schemaProxy)
			if schema == nil {
				schema = &model.Schema{}
			}
			schema.Name = name
			spec.Schemas = append(spec.Schemas, *schema)
		}
	}

	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for pathStr, pathItem := range doc.Paths.PathItems.FromOldest() {
			if pathItem == nil {
				continue
			}
			path := transformPath(pathStr, pathItem)
			spec.Paths = append(spec.Paths, path)
			spec.Operations = append(spec.Operations, path.Operations...)
		}
	}

	if doc.Components != nil && doc.Components.SecuritySchemes != nil {
		for name, scheme := range doc.Components.SecuritySchemes.FromOldest() {
			if scheme == nil {
				continue
			}
			spec.SecuritySchemes = append(spec.SecuritySchemes, transformSecurityScheme(name, scheme))
		}
	}

	return spec, nil
}

func transformInfo(info *base.Info) model.Info {
	if info == nil {
		return model.Info{}
	}
	result := model.Info{
		Title:       info.Title,
		Description: info.Description,
		Version:     info.Version,
	}
	if info.Contact != nil {
		result.Contact = &model.Contact{
			Name:  info.Contact.Name,
			Email: info.Contact.Email,
			URL:   info.Contact.URL,
		}
	}
	return result
}

func transformServers(servers []*v3.Server) []model.Server {
	var result []model.Server
	for _, s := range servers {
		if s == nil {
			continue
		}
		result = append(result, model.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}
	return result
}

func transformTags(tags []*base.Tag) []model.Tag {
	var result []model.Tag
	for _, t := range tags {
		if t == nil {
			continue
		}
		result = append(result, model.Tag{
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return result
}

func transformSecurityRequirements(reqs []*base.SecurityRequirement) []model.SecurityRequirement {
	var result []model.SecurityRequirement
	for _, req := range reqs {
		if req == nil || req.Requirements == nil {
			continue
		}
		for name, scopes := range req.Requirements.FromOldest() {
			result = append(result, model.SecurityRequirement{
				Name:   name,
				Scopes: scopes,
			})
		}
	}
	return result
}

func transformPath(pathStr string, pathItem *v3.PathItem) model.Path {
	path := model.Path{Path: pathStr}

	// Use a slice for deterministic ordering
	methods := []struct {
		method model.Method
		op     *v3.Operation
	}{
		{model.MethodGet, pathItem.Get},
		{model.MethodPut, pathItem.Put},
		{model.MethodPost, pathItem.Post},
		{model.MethodDelete, pathItem.Delete},
		{model.MethodOptions, pathItem.Options},
		{model.MethodHead, pathItem.Head},
		{model.MethodPatch, pathItem.Patch},
		{model.MethodTrace, pathItem.Trace},
		{model.MethodQuery, pathItem.Query}, // OpenAPI 3.2
	}

	shared := make([]model.Parameter, 0, len(pathItem.Parameters))
	for _, p := range pathItem.Parameters {
		if p != nil {
			shared = append(shared, transformParameter(p))
		}
	}

	for _, m := range methods {
		if m.op == nil {
			continue
		}
		operation := transformOperation(m.method, pathStr, m.op, shared)
		path.Operations = append(path.Operations, operation)
	}

	return path
}

func transformOperation(method model.Method, path string, op *v3.Operation, shared []model.Parameter) model.Operation {
	operation := model.Operation{
		OperationID: op.OperationId,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Deprecated:  boolPtr(op.Deprecated),
	}

	var own []model.Parameter
	for _, p := range op.Parameters {
		if p != nil {
			own = append(own, transformParameter(p))
		}
	}
	operation.Parameters = mergeParameters(shared, own)

	if op.RequestBody != nil {
		operation.RequestBody = transformRequestBody(op.RequestBody)
	}

	if op.Responses != nil {
		operation.HasResponses = true
		if op.Responses.Codes != nil {
			for code, resp := range op.Responses.Codes.FromOldest() {
				if resp == nil {
					continue
				}
				operation.Responses = append(operation.Responses, transformResponse(code, resp))
			}
		}
		if op.Responses.Default != nil {
			operation.Responses = append(operation.Responses, transformResponse("default", op.Responses.Default))
		}
	}

	for _, secReq := range op.Security {
		if secReq == nil || secReq.Requirements == nil {
			continue
		}
		for name, scopes := range secReq.Requirements.FromOldest() {
			operation.Security = append(operation.Security, model.SecurityRequirement{
				Name:   name,
				Scopes: scopes,
			})
		}
	}

	return operation
}

// mergeParameters puts path-level parameters first, unless the operation
// overrides them with the same name and location.
func mergeParameters(shared, own []model.Parameter) []model.Parameter {
	if len(shared) == 0 {
		return own
	}
	overridden := make(map[string]bool, len(own))
	for _, p := range own {
		overridden[string(p.In)+":"+p.Name] = true
	}
	var result []model.Parameter
	for _, p := range shared {
		if !overridden[string(p.In)+":"+p.Name] {
			result = append(result, p)
		}
	}
	return append(result, own...)
}

func transformParameter(p *v3.Parameter) model.Parameter {
	param := model.Parameter{
		Name:        p.Name,
		In:          model.ParameterLocation(strings.ToLower(p.In)),
		Description: p.Description,
		Required:    boolPtr(p.Required),
		Deprecated:  p.Deprecated,
	}

	if p.Schema != nil {
		param.Schema = transformSchemaProxy(p.Schema)
	} else if p.Content != nil {
		for _, content := range p.Content.FromOldest() {
			if content != nil && content.Schema != nil {
				param.Schema = transformSchemaProxy(content.Schema)
				break
			}
		}
	}

	return param
}

func transformRequestBody(rb *v3.RequestBody) *model.RequestBody {
	return &model.RequestBody{
		Description: rb.Description,
		Required:    boolPtr(rb.Required),
		Content:     transformContent(rb.Content),
	}
}

func transformResponse(code string, resp *v3.Response) model.Response {
	return model.Response{
		StatusCode:  code,
		Description: resp.Description,
		Content:     transformContent(resp.Content),
	}
}

func transformContent(content *orderedmap.Map[string, *v3.MediaType]) []model.MediaTypeContent {
	if content == nil {
		return nil
	}
	var result []model.MediaTypeContent
	for mediaType, mt := range content.FromOldest() {
		mtc := model.MediaTypeContent{MediaType: mediaType}
		if mt != nil {
			if mt.Schema != nil {
				mtc.Schema = transformSchemaProxy(mt.Schema)
			}
			if mt.Example != nil {
				mtc.Example = mt.Example
			}
			if mt.Examples != nil {
				for name, ex := range mt.Examples.FromOldest() {
					if ex == nil {
						continue
					}
					var value any
					switch {
					case ex.Value != nil:
						value = ex.Value
					case ex.ExternalValue != "":
						value = ex.ExternalValue
					default:
						continue
					}
					mtc.Examples = append(mtc.Examples, model.NamedExample{Name: name, Value: value})
				}
			}
		}
		result = append(result, mtc)
	}
	return result
}

func transformSchemaProxy(proxy *base.SchemaProxy) *model.Schema {
	if proxy == nil {
		return nil
	}

	if proxy.IsReference() {
		schema := &model.Schema{Ref: proxy.GetReference()}
		if low := proxy.GoLow(); low != nil {
			applyRefSiblings(schema, low.GetValueNode())
		}
		return schema
	}

	return transformSchema(proxy.Schema())
}

// applyRefSiblings keeps the annotations written next to a $ref, which
// describe the property rather than the referenced schema.
func applyRefSiblings(schema *model.Schema, node *yaml.Node) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "description":
			schema.Description = value.Value
		case "title":
			schema.Title = value.Value
		case "readOnly":
			schema.ReadOnly = nodeBool(value)
		case "writeOnly":
			schema.WriteOnly = nodeBool(value)
		case "deprecated":
			schema.Deprecated = nodeBool(value)
		}
	}
}

func nodeBool(n *yaml.Node) bool {
	var b bool
	if err := n.Decode(&b); err != nil {
		return false
	}
	return b
}

func transformSchema(s *base.Schema) *model.Schema {
	if s == nil {
		return nil
	}

	schema := &model.Schema{
		Title:       s.Title,
		Description: s.Description,
		Format:      s.Format,
		ReadOnly:    boolPtr(s.ReadOnly),
		WriteOnly:   boolPtr(s.WriteOnly),
		Deprecated:  boolPtr(s.Deprecated),
		Required:    s.Required,
	}

	for _, t := range s.Type {
		schema.Types = append(schema.Types, model.SchemaType(t))
	}

	switch {
	case s.Example != nil:
		schema.Example = s.Example
	case len(s.Examples) > 0 && s.Examples[0] != nil:
		schema.Example = s.Examples[0]
	}

	for _, e := range s.Enum {
		schema.Enum = append(schema.Enum, nodeValue(e))
	}

	if s.Properties != nil {
		for propName, propProxy := range s.Properties.FromOldest() {
			schema.Properties = append(schema.Properties, model.Property{
				Name:   propName,
				Schema: transformSchemaProxy(propProxy),
			})
		}
	}

	if s.Items != nil && s.Items.A != nil {
		schema.Items = transformSchemaProxy(s.Items.A)
	}

	for _, proxy := range s.AllOf {
		schema.AllOf = append(schema.AllOf, transformSchemaProxy(proxy))
	}
	for _, proxy := range s.OneOf {
		schema.OneOf = append(schema.OneOf, transformSchemaProxy(proxy))
	}
	for _, proxy := range s.AnyOf {
		schema.AnyOf = append(schema.AnyOf, transformSchemaProxy(proxy))
	}

	if s.Discriminator != nil {
		schema.Discriminator = &model.Discriminator{
			PropertyName: s.Discriminator.PropertyName,
		}
		if s.Discriminator.Mapping != nil {
			for value, ref := range s.Discriminator.Mapping.FromOldest() {
				schema.Discriminator.Mapping = append(schema.Discriminator.Mapping, model.DiscriminatorMapping{
					Value: value,
					Ref:   ref,
				})
			}
		}
	}

	return schema
}

func transformSecurityScheme(name string, scheme *v3.SecurityScheme) model.SecurityScheme {
	return model.SecurityScheme{
		Name:         name,
		Type:         model.SecuritySchemeType(scheme.Type),
		Description:  scheme.Description,
		ParamName:    scheme.Name,
		In:           scheme.In,
		Scheme:       scheme.Scheme,
		BearerFormat: scheme.BearerFormat,
	}
}

// nodeValue decodes a YAML node into a plain Go value, falling back to the
// raw scalar text.
func nodeValue(n *yaml.Node) any {
	if n == nil {
		return nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	return v
}

func boolPtr(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
