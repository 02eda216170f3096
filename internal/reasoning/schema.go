package reasoning

import "encoding/json"

// JSON schemas submitted with structured-output requests. Array caps are
// deliberately small so core responses fit tight output-token budgets.

const stage1SchemaName = "contract_analysis_core"

var stage1Schema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "required": ["version", "generatedAt", "generalInformation", "contractSummary", "issuesToAddress", "criteriaMet", "clauseFindings", "proposedEdits", "metadata"],
  "properties": {
    "version": {"type": "string", "enum": ["v3"]},
    "generatedAt": {"type": "string", "format": "date-time"},
    "generalInformation": {
      "type": "object",
      "required": ["complianceScore"],
      "properties": {
        "complianceScore": {"type": "number", "minimum": 0, "maximum": 100},
        "selectedPerspective": {"type": "string"},
        "reviewTimeSeconds": {"type": "integer", "minimum": 0},
        "timeSavingsMinutes": {"type": "integer", "minimum": 0},
        "reportExpiry": {"type": "string", "format": "date-time"}
      }
    },
    "contractSummary": {
      "type": "object",
      "required": ["contractName", "parties"],
      "properties": {
        "contractName": {"type": "string"},
        "fileName": {"type": "string"},
        "parties": {"type": "array", "items": {"type": "string"}, "minItems": 1},
        "agreementDirection": {"type": "string"},
        "purpose": {"type": "string"},
        "period": {"type": "string"},
        "governingLaw": {"type": "string"},
        "jurisdiction": {"type": "string"}
      }
    },
    "issuesToAddress": {
      "type": "array",
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["id", "title", "severity", "recommendation"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "severity": {"type": "string", "enum": ["critical", "high", "medium", "low", "info"]},
          "category": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "clauseReference": {
            "type": "object",
            "properties": {
              "clauseId": {"type": "string"},
              "locationHint": {"type": "string"},
              "excerpt": {"type": "string"}
            }
          },
          "legalBasis": {"type": "array", "items": {"type": "string"}},
          "recommendation": {"type": "string"},
          "rationale": {"type": "string"}
        }
      }
    },
    "criteriaMet": {
      "type": "array",
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["id", "title", "met"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "met": {"type": "boolean"},
          "evidence": {"type": "string"}
        }
      }
    },
    "clauseFindings": {
      "type": "array",
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["clauseId", "title", "summary", "riskLevel"],
        "properties": {
          "clauseId": {"type": "string"},
          "title": {"type": "string"},
          "summary": {"type": "string"},
          "excerpt": {"type": "string"},
          "riskLevel": {"type": "string", "enum": ["critical", "high", "medium", "low", "info"]},
          "recommendation": {"type": "string"}
        }
      }
    },
    "proposedEdits": {
      "type": "array",
      "maxItems": 2,
      "items": {
        "type": "object",
        "required": ["id", "anchorText", "proposedText"],
        "properties": {
          "id": {"type": "string"},
          "clauseId": {"type": "string"},
          "anchorText": {"type": "string"},
          "proposedText": {"type": "string"},
          "intent": {"type": "string"},
          "rationale": {"type": "string"},
          "previousText": {"type": "string"},
          "updatedText": {"type": "string"},
          "applyByDefault": {"type": "boolean"}
        }
      }
    },
    "metadata": {
      "type": "object",
      "required": ["model"],
      "properties": {
        "model": {"type": "string"},
        "modelCategory": {"type": "string"},
        "playbookKey": {"type": "string"}
      }
    }
  }
}`)

const stage2SchemaName = "contract_analysis_enhancements"

var stage2Schema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "playbookInsights": {
      "type": "array",
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["id", "title", "detail"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "detail": {"type": "string"},
          "severity": {"type": "string"},
          "clauseId": {"type": "string"}
        }
      }
    },
    "clauseExtractions": {
      "type": "array",
      "maxItems": 6,
      "items": {
        "type": "object",
        "required": ["id", "clauseId", "title", "originalText"],
        "properties": {
          "id": {"type": "string"},
          "clauseId": {"type": "string"},
          "title": {"type": "string"},
          "category": {"type": "string"},
          "originalText": {"type": "string"},
          "normalizedText": {"type": "string"},
          "importance": {"type": "string"},
          "location": {
            "type": "object",
            "properties": {
              "page": {"type": "integer"},
              "paragraph": {"type": "integer"},
              "section": {"type": "string"},
              "clauseNumber": {"type": "string"}
            }
          },
          "references": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "similarityAnalysis": {
      "type": "array",
      "maxItems": 4,
      "items": {
        "type": "object",
        "required": ["clauseId", "standardReference", "similarityScore"],
        "properties": {
          "clauseId": {"type": "string"},
          "standardReference": {"type": "string"},
          "similarityScore": {"type": "number", "minimum": 0, "maximum": 1},
          "notes": {"type": "string"}
        }
      }
    },
    "deviationInsights": {
      "type": "array",
      "maxItems": 4,
      "items": {
        "type": "object",
        "required": ["id", "severity", "description"],
        "properties": {
          "id": {"type": "string"},
          "clauseId": {"type": "string"},
          "severity": {"type": "string"},
          "description": {"type": "string"},
          "suggestedAction": {"type": "string"}
        }
      }
    },
    "actionItems": {
      "type": "array",
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["id", "title", "priority"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "priority": {"type": "string"},
          "owner": {"type": "string"},
          "dueHint": {"type": "string"}
        }
      }
    },
    "draftMetadata": {
      "type": "object",
      "properties": {
        "draftedBy": {"type": "string"},
        "baselineTemplate": {"type": "string"},
        "revision": {"type": "integer"}
      }
    }
  }
}`)
