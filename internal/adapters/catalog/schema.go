package catalog

// catalogSchema validates a catalog document before it is decoded
const catalogSchema = `{
  "type": "object",
  "required": ["providers"],
  "properties": {
    "providers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "profession", "location", "phone", "rating"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "profession": {"type": "string"},
          "location": {"type": "string"},
          "phone": {"type": "string", "minLength": 1},
          "email": {"type": ["string", "null"]},
          "rating": {"type": "number", "minimum": 0, "maximum": 5},
          "skills": {"type": "array", "items": {"type": "string"}},
          "availability": {"type": "string"},
          "photo_url": {"type": ["string", "null"]},
          "description": {"type": "string"},
          "experience_years": {"type": "integer", "minimum": 0}
        }
      }
    },
    "reviews": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "provider_id", "rating"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "provider_id": {"type": "string", "minLength": 1},
          "customer_name": {"type": "string"},
          "rating": {"type": "integer", "minimum": 1, "maximum": 5},
          "comment": {"type": "string"},
          "created_at": {"type": "string", "format": "date-time"}
        }
      }
    }
  }
}`
