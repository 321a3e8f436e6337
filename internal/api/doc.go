// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

/*
Package api provides the HTTP REST API layer for Briefwire.

Key components:

  - Router: Chi route configuration with the shared middleware stack
  - FeedHandler: the personalized feed endpoint (GET /api/v1/feed)
  - Response formatting: standardized JSON envelopes with metadata
  - Authentication: optional JWT bearer tokens; an absent or invalid
    token degrades the request to anonymous rather than rejecting it

All responses use the models.APIResponse envelope. Validation failures
return 400 with a VALIDATION_ERROR code and field-level details.
*/
package api
