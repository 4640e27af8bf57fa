// Package objects records drawing operations into reusable page objects and
// splices them onto pages.
//
// An object is opened with Manager.OpenObject. From then on, everything the
// rendering engine draws goes into a scratch buffer instead of the page.
// Manager.CloseObject stores the scratch content as a Recording and puts the
// engine's live buffer and graphics state back exactly as they were. Sessions
// can be nested; they close in LIFO order.
//
// Manager.AddObject attaches a placement ("add", "all", "odd", "even",
// "next", "nextodd", "nexteven") to a closed object. Pages receive their
// objects when they are left: the page-advance path calls Manager.OnNewPage
// before the engine starts the next page, and Manager.OnFinalize handles the
// last page before the document is written.
//
// The engine is reached through the Surface interface only.
package objects
