// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify delivers events to participants.

Events are sent when a pending session becomes active and when round two
starts. Delivery is best effort: failures are logged and never fail the
request that triggered them.

# Notifiers

  - Hub: pushes JSON events over websocket to every open connection of a participant
  - Webhook: POSTs the event to the participant's address when it is an http(s) URL
  - Multi: fans an event out to several notifiers, joining their errors
  - Async: delivers in the background on a detached, time-bounded context

Addresses that are not http(s) URLs are ignored by Webhook.
*/
package notify
